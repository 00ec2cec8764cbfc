package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "wayfinder",
	Short: "Wayfinder guides people through a building by the hand",
	Long: `Wayfinder drives a humanoid robot that offers its hand, walks an
accessibility-aware route to the destination and pauses whenever the user lets go.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// legacyNames maps the flag spellings of the first robot scripts.
var legacyNames = map[string]string{
	"current_room": "origin",
	"target_room":  "destination",
	"alevel":       "level",
}

func normalizeFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if n, ok := legacyNames[name]; ok {
		name = n
	}
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "Settings file (YAML)")
	pf.String("site", "", "Site file with locations and edges")
	pf.String("languages-dir", "", "Directory of language tables")
	pf.String("lang", "", "Language code")
	pf.String("origin", "", "Location the robot starts from")
	pf.String("destination", "", "Location to guide the user to")
	pf.Int("level", 0, "Accessibility level of the user")
	pf.String("store", "", "Progress store: memory, file or redis")
	pf.String("store-dir", "", "Directory of the file store")
	pf.String("redis-addr", "", "Redis address of the redis store")
	pf.String("session", "", "Session id (generated when empty)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")
}
