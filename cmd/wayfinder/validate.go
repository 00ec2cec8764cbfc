package main

import (
	"fmt"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the site and language files for consistency",
	Long:  `Crawls the site from the origin and reports isolated or unreachable locations and missing sentences.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if err := cli.Validate(cmd.Context(), cmd.OutOrStdout(), s); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Site is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
