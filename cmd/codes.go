package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"sjsage522/storecrawler/internal/codes"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "codes [regions|categories]",
		Short:     "Lists the prefecture and genre codes",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"regions", "categories"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "regions"
			if len(args) == 1 {
				which = args[0]
			}

			var entries []codes.Code
			switch which {
			case "regions":
				entries = codes.Regions()
			case "categories":
				entries = codes.Categories()
			default:
				return fmt.Errorf("unknown code table %q", which)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Label", "Token"})
			for _, e := range entries {
				t.AppendRow(table.Row{e.Label, e.Token})
			}
			t.Render()
			return nil
		},
	}
}
