package main

import (
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/spf13/cobra"
)

// loadSettings reads the settings file and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	s, err := config.Load(path)
	if err != nil {
		return s, err
	}

	stringFlags := map[string]*string{
		"site":          &s.Site,
		"languages-dir": &s.LanguagesDir,
		"lang":          &s.Lang,
		"origin":        &s.Origin,
		"destination":   &s.Destination,
		"store":         &s.Store.Kind,
		"store-dir":     &s.Store.Dir,
		"redis-addr":    &s.Store.RedisAddr,
		"session":       &s.SessionID,
		"log-level":     &s.LogLevel,
		"log-format":    &s.LogFormat,
		"metrics-addr":  &s.MetricsAddr,
	}
	for name, dst := range stringFlags {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if flags.Changed("level") {
		s.Level, _ = flags.GetInt("level")
	}
	if flags.Changed("wait") {
		s.Wait, _ = flags.GetDuration("wait")
	}
	if flags.Changed("retry-delay") {
		s.RetryDelay, _ = flags.GetDuration("retry-delay")
	}
	if flags.Changed("max-retries") {
		s.MaxNavigationRetries, _ = flags.GetInt("max-retries")
	}
	if flags.Changed("simulate") {
		s.SimulateResponses, _ = flags.GetBool("simulate")
	}
	if flags.Changed("speed") {
		s.MoveSpeed, _ = flags.GetFloat64("speed")
	}

	return s, s.Finalize()
}
