package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// sourcesCmd lists the configured source registry.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if len(cfg.Sources) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no sources configured")
			return nil
		}
		for _, s := range cfg.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-10s %s\n", s.ID, s.Type, s.URL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
