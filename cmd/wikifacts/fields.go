// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wikifacts/internal/facts"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the extractable infobox fields",
	Long: `Fields prints the field rule table the ask command extracts with:
either the built-in rules or the table named by rules_file in the
configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rules := facts.DefaultRules()
		if cfg.RulesFile != "" {
			rules, err = facts.LoadRules(cfg.RulesFile)
			if err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		for _, r := range rules {
			fmt.Fprintf(w, "%-20s  %s\n", r.Name, r.Pattern)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
