package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/spf13/cobra"
)

var (
	playersFile  string
	previousFile string
)

func init() {
	generateCmd.Flags().StringVarP(&playersFile, "file", "f", "", "JSON file with the selected players")
	generateCmd.Flags().StringVar(&previousFile, "previous", "", "JSON file with the previous pairing to move away from")
	generateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(generateCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players [user-id]",
	Short: "List the roster of an organizer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players/" + args[0])
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches [user-id]",
	Short: "List the matches of an organizer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/matches/" + args[0])
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get the usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Split players into two teams locally",
	Long: `Runs the team balancer on a JSON array of players without a server,
for example: kickabout-cli generate -f players.json --previous last.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var players []balancer.Player
		if err := readJSONFile(playersFile, &players); err != nil {
			return err
		}
		var previous *balancer.Pairing
		if previousFile != "" {
			previous = &balancer.Pairing{}
			if err := readJSONFile(previousFile, previous); err != nil {
				return err
			}
		}

		res, err := balancer.New().Generate(players, previous)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
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
