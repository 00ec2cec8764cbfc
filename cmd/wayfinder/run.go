package main

import (
	"github.com/aretw0/wayfinder/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Guide the user to the destination",
	Long: `Plans the route, raises the robot's hand and walks the route while the user
holds it. Keys: t touch, r release, y yes, n no, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		fresh, _ := cmd.Flags().GetBool("fresh")
		resume, _ := cmd.Flags().GetBool("resume")
		quiet, _ := cmd.Flags().GetBool("quiet")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.RunSession(cli.RunOptions{
			Settings: s,
			Fresh:    fresh,
			Resume:   resume,
			Quiet:    quiet,
			JSON:     jsonMode,
			Stdin:    cmd.InOrStdin(),
			Stdout:   cmd.OutOrStdout(),
			Stderr:   cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.Duration("wait", 0, "Timeout of the waiting states (e.g. 60s)")
	f.Int("max-retries", 0, "Consecutive failed moves before giving up (0 = unlimited)")
	f.Duration("retry-delay", 0, "Pause between attempts at the same waypoint")
	f.Bool("simulate", false, "Answer the cancellation question randomly")
	f.Float64("speed", 0, "Simulated walking speed in m/s (0 = instant)")
	f.String("metrics-addr", "", "Serve status, events and /metrics on this address")
	f.Bool("fresh", false, "Discard stored progress of the session")
	f.Bool("resume", false, "Continue the stored progress of the session")
	f.BoolP("quiet", "q", false, "Only print robot output")
	f.Bool("json", false, "Headless mode: JSON-lines events on stdin, lifecycle records on stdout")
}
