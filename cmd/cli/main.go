package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	season string
	asUser string
)

var rootCmd = &cobra.Command{
	Use:   "canchita-cli",
	Short: "A CLI to interact with the la-canchita server",
	Long: `A command-line interface for making requests to the various endpoints
of the la-canchita application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&season, "season", "", "The season id to operate on")
	rootCmd.PersistentFlags().StringVar(&asUser, "as", "", "The uid sent in the X-User-ID header for admin endpoints")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
