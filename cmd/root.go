package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ivmanto",
	Short: "The ivmanto.com site server",
	Long: `ivmanto serves the ivmanto.com site: server-rendered pages for the
services, blog and booking routes, the consent-gated analytics data layer,
and the Gemini-backed assistant and blog idea generator.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "ivmanto.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
