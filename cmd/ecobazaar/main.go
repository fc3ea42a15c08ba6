package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Blank imports run init() registration: migrations, seeders, listeners.
	_ "github.com/shashiranjanraj/ecobazaar/app/listeners"
	_ "github.com/shashiranjanraj/ecobazaar/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecobazaar",
	Short: "EcoBazaar — sustainable marketplace API",
	Long:  "EcoBazaar is a multi-role marketplace backend. Use this CLI to run the server and manage the database.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
