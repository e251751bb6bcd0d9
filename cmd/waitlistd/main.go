// Package main implements waitlistd, the landing page waitlist server and its operator commands.
//
// @title Landing Waitlist API
// @version 1.0
// @description Pre-launch waitlist signup and administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin JWT.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "waitlistd",
	Short: "Landing page waitlist server",
	Long: `waitlistd serves the pre-launch waitlist: the signup form, the JSON API
and the admin routes. Configuration is read from the environment (and a .env
file outside production).`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(joinCmd)
}
