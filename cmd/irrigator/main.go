// Irrigator is the device agent of the irrigation relay controller.
//
// At every boot it loads the stored network credentials, makes one bounded
// attempt to join the network and then serves either the dashboard
// (readings, event stream, zone control) or, when the join failed, an open
// access point with the credential form.
//
// Usage:
//
//	irrigator [command] [flags]
//
// Running without a command starts the agent.
//
//	@title						Irrigator device API
//	@version					1.0
//	@description				Readings, zones and journal of the irrigation controller, plus its firmware update channel.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "irrigator",
	Short: "Irrigation controller device agent",
	Long: `Runs the irrigation controller agent.

The agent joins the stored wireless network and serves the dashboard, or
opens the provisioning access point when it cannot.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runAgent,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	f := rootCmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")
	f.String("port", "80", "HTTP port")
	f.String("profile", "full", "route-set profile: full or relay")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("storage-dir", "data", "directory of the credential files")
	f.String("db-path", "irrigator.db", "sqlite journal path")

	rootCmd.AddCommand(runCmd, versionCmd, hashSecretCmd)
}
