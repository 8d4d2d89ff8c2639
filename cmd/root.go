package cmd

import (
	"github.com/spf13/cobra"

	"sjsage522/storecrawler/logger"
)

var (
	Version = "dev"
)

// NewRootCmd builds the storecrawler command tree
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "storecrawler",
		Short: "Builds restaurant lists from the tabelog directory",
		Long: `storecrawler walks tabelog search results for a prefecture (and
optionally a genre) and collects each store's name, genre, address, phone,
reservation number, homepage and seat count into a CSV file.

Examples:
  storecrawler crawl --region 東京都 --category ラーメン --start 1 --end 10
  storecrawler crawl --region osaka --max-pages 60
  storecrawler codes regions`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.InitWithWriter(cmd.ErrOrStderr())
			if logLevel != "" {
				return logger.SetLevel(logLevel)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to LOG_LEVEL")

	root.AddCommand(newCrawlCmd())
	root.AddCommand(newCodesCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
