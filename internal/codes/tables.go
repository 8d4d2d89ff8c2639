package codes

var regionEntries = []Code{
	{Label: "北海道", Token: "hokkaido"},
	{Label: "青森県", Token: "aomori"},
	{Label: "岩手県", Token: "iwate"},
	{Label: "宮城県", Token: "miyagi"},
	{Label: "秋田県", Token: "akita"},
	{Label: "山形県", Token: "yamagata"},
	{Label: "福島県", Token: "fukushima"},
	{Label: "茨城県", Token: "ibaraki"},
	{Label: "栃木県", Token: "tochigi"},
	{Label: "群馬県", Token: "gunma"},
	{Label: "埼玉県", Token: "saitama"},
	{Label: "千葉県", Token: "chiba"},
	{Label: "東京都", Token: "tokyo"},
	{Label: "神奈川県", Token: "kanagawa"},
	{Label: "新潟県", Token: "niigata"},
	{Label: "富山県", Token: "toyama"},
	{Label: "石川県", Token: "ishikawa"},
	{Label: "福井県", Token: "fukui"},
	{Label: "山梨県", Token: "yamanashi"},
	{Label: "長野県", Token: "nagano"},
	{Label: "岐阜県", Token: "gifu"},
	{Label: "静岡県", Token: "shizuoka"},
	{Label: "愛知県", Token: "aichi"},
	{Label: "三重県", Token: "mie"},
	{Label: "滋賀県", Token: "shiga"},
	{Label: "京都府", Token: "kyoto"},
	{Label: "大阪府", Token: "osaka"},
	{Label: "兵庫県", Token: "hyogo"},
	{Label: "奈良県", Token: "nara"},
	{Label: "和歌山県", Token: "wakayama"},
	{Label: "鳥取県", Token: "tottori"},
	{Label: "島根県", Token: "shimane"},
	{Label: "岡山県", Token: "okayama"},
	{Label: "広島県", Token: "hiroshima"},
	{Label: "山口県", Token: "yamaguchi"},
	{Label: "徳島県", Token: "tokushima"},
	{Label: "香川県", Token: "kagawa"},
	{Label: "愛媛県", Token: "ehime"},
	{Label: "高知県", Token: "kochi"},
	{Label: "福岡県", Token: "fukuoka"},
	{Label: "佐賀県", Token: "saga"},
	{Label: "長崎県", Token: "nagasaki"},
	{Label: "熊本県", Token: "kumamoto"},
	{Label: "大分県", Token: "oita"},
	{Label: "宮崎県", Token: "miyazaki"},
	{Label: "鹿児島県", Token: "kagoshima"},
	{Label: "沖縄県", Token: "okinawa"},
}

var categoryEntries = []Code{
	{Label: "和食", Token: "washoku"},
	{Label: "日本料理", Token: "japanese"},
	{Label: "寿司", Token: "sushi"},
	{Label: "海鮮・魚介", Token: "seafood"},
	{Label: "蕎麦", Token: "soba"},
	{Label: "うなぎ", Token: "unagi"},
	{Label: "焼き鳥", Token: "yakitori"},
	{Label: "お好み焼き", Token: "okonomiyaki"},
	{Label: "もんじゃ焼き", Token: "monjya"},
	{Label: "洋食", Token: "yoshoku"},
	{Label: "フレンチ", Token: "french"},
	{Label: "イタリアン", Token: "italian"},
	{Label: "スペイン料理", Token: "spain"},
	{Label: "ステーキ", Token: "steak"},
	{Label: "中華料理", Token: "chinese"},
	{Label: "韓国料理", Token: "korea"},
	{Label: "タイ料理", Token: "thai"},
	{Label: "ラーメン", Token: "ramen"},
	{Label: "カレー", Token: "curry"},
	{Label: "鍋", Token: "nabe"},
	{Label: "もつ鍋", Token: "motsu"},
	{Label: "居酒屋", Token: "izakaya"},
	{Label: "パン", Token: "pan"},
	{Label: "スイーツ", Token: "sweets"},
	{Label: "バー・お酒", Token: "bar"},
	{Label: "天ぷら", Token: "tempura"},
	{Label: "焼肉", Token: "yakiniku"},
	{Label: "料理旅館", Token: "ryokan"},
	{Label: "ビストロ", Token: "bistro"},
	{Label: "ハンバーグ", Token: "hamburgersteak"},
	{Label: "とんかつ", Token: "tonkatsu"},
	{Label: "串揚げ", Token: "kushiage"},
	{Label: "うどん", Token: "udon"},
	{Label: "しゃぶしゃぶ", Token: "syabusyabu"},
	{Label: "沖縄料理", Token: "okinawafood"},
	{Label: "ハンバーガー", Token: "hamburger"},
	{Label: "パスタ", Token: "pasta"},
	{Label: "ピザ", Token: "pizza"},
	{Label: "餃子", Token: "gyouza"},
	{Label: "ホルモン", Token: "horumon"},
	{Label: "カフェ", Token: "cafe"},
	{Label: "喫茶店", Token: "kissaten"},
	{Label: "ケーキ", Token: "cake"},
	{Label: "タピオカ", Token: "tapioca"},
	{Label: "食堂", Token: "teishoku"},
	{Label: "ビュッフェ・バイキング", Token: "viking"},
}
