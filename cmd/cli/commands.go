package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(asadosCmd)
	rootCmd.AddCommand(asadoStandingsCmd)
	rootCmd.AddCommand(notifyTableCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show the season leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(seasonPath("/table"))
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the raw per-player standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(seasonPath("/standings"))
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(seasonPath("/matches"))
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the season roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(seasonPath("/players"))
	},
}

var asadosCmd = &cobra.Command{
	Use:   "asados",
	Short: "List the recorded asados",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(seasonPath("/asados"))
	},
}

var asadoStandingsCmd = &cobra.Command{
	Use:   "asado-standings",
	Short: "Show the attendance league standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(seasonPath("/asado-standings"))
	},
}

var notifyTableCmd = &cobra.Command{
	Use:   "notify-table",
	Short: "Post the season table to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest(seasonPath("/notify-table"))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get the persisted business counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

func seasonPath(suffix string) string {
	return "/seasons/" + season + suffix
}

func performGetRequest(endpoint string) error {
	req, err := http.NewRequest(http.MethodGet, host+endpoint, nil)
	if err != nil {
		return err
	}
	return performRequest(req)
}

func performPostRequest(endpoint string) error {
	req, err := http.NewRequest(http.MethodPost, host+endpoint, nil)
	if err != nil {
		return err
	}
	return performRequest(req)
}

func performRequest(req *http.Request) error {
	if asUser != "" {
		req.Header.Set("X-User-ID", asUser)
	}
	fmt.Printf("Making request to %s\n", req.URL)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
