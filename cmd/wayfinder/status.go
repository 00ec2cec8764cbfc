package main

import (
	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [session-id]",
	Short: "Show stored walk progress",
	Long:  `Without arguments lists the stored sessions; with a session id shows its progress.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		plain, _ := cmd.Flags().GetBool("plain")
		reset, _ := cmd.Flags().GetBool("reset")
		if reset && id != "" {
			return cli.ResetSession(cmd.Context(), s, id)
		}
		return cli.ShowStatus(cmd.Context(), cmd.OutOrStdout(), s, id, plain)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().Bool("plain", false, "Print markdown without styling")
	statusCmd.Flags().Bool("reset", false, "Delete the stored progress of the session")
}
