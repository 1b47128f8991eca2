package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meatdealer/backend/internal/app"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "meatdealer",
	Short: "Profile catalog backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Serve(cmd.Context(), configFile)
	},
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|status]",
	Short:     "Apply or inspect database migrations",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := ""
		if len(args) > 0 {
			command = args[0]
		}
		return app.Migrate(cmd.Context(), configFile, command)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <username> <password>",
	Short: "Create or reset an admin account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Seed(cmd.Context(), configFile, args[0], args[1])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a TOML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
