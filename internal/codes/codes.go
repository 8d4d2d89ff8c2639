package codes

// Code pairs a display label with the path token the directory uses in URLs
type Code struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// table is an immutable label/token lookup built once at init
type table struct {
	entries []Code
	byLabel map[string]string
	byToken map[string]string
}

func newTable(entries []Code) *table {
	t := &table{
		entries: entries,
		byLabel: make(map[string]string, len(entries)),
		byToken: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.byToken[e.Token]; dup {
			panic("codes: duplicate token " + e.Token)
		}
		t.byLabel[e.Label] = e.Token
		t.byToken[e.Token] = e.Label
	}
	return t
}

// token returns "" for empty or unknown labels
func (t *table) token(label string) string {
	if label == "" {
		return ""
	}
	return t.byLabel[label]
}

// label falls back to the raw token when it is not in the table
func (t *table) label(token string) string {
	if label, ok := t.byToken[token]; ok {
		return label
	}
	return token
}

// resolve accepts either a label or a token and returns the label
func (t *table) resolve(input string) (string, bool) {
	if _, ok := t.byLabel[input]; ok {
		return input, true
	}
	if label, ok := t.byToken[input]; ok {
		return label, true
	}
	return input, false
}

func (t *table) list() []Code {
	out := make([]Code, len(t.entries))
	copy(out, t.entries)
	return out
}

var (
	regionTable   = newTable(regionEntries)
	categoryTable = newTable(categoryEntries)
)

// RegionToken translates a prefecture label (e.g. 東京都) into its URL token.
// Empty or unknown labels yield "", which callers must check before building a URL.
func RegionToken(label string) string {
	return regionTable.token(label)
}

// CategoryToken translates a genre label into its URL token.
// An empty result means "all categories".
func CategoryToken(label string) string {
	return categoryTable.token(label)
}

// RegionLabel is the reverse of RegionToken. Unknown tokens are returned as-is.
func RegionLabel(token string) string {
	return regionTable.label(token)
}

// CategoryLabel is the reverse of CategoryToken. Unknown tokens are returned as-is.
func CategoryLabel(token string) string {
	return categoryTable.label(token)
}

// ResolveRegion restores a region label from either a label or a token
func ResolveRegion(input string) (string, bool) {
	return regionTable.resolve(input)
}

// ResolveCategory restores a category label from either a label or a token
func ResolveCategory(input string) (string, bool) {
	return categoryTable.resolve(input)
}

// Regions returns the region table in display order
func Regions() []Code {
	return regionTable.list()
}

// Categories returns the category table in display order
func Categories() []Code {
	return categoryTable.list()
}
