package main

import (
	"fmt"

	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Print the route without moving",
	Long: `Computes the cheapest route the accessibility level allows. When the
destination is unreachable it reports the level that would unlock it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		switch f := cli.RouteFormat(format); f {
		case cli.RouteFormatMarkdown, cli.RouteFormatMermaid, cli.RouteFormatPlain:
			return cli.PrintRoute(cmd.Context(), cmd.OutOrStdout(), s, f)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringP("format", "f", string(cli.RouteFormatMarkdown), "Output: markdown, mermaid or plain")
}
