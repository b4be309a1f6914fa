package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/seopilot/internal/scrape"
)

var (
	checkURLRemote  string
	checkURLTimeout time.Duration
)

var checkURLCmd = &cobra.Command{
	Use:   "checkurl <url>",
	Short: "Check whether a URL is reachable",
	Long:  `Fetch a URL once and report its accessibility, status code and whether it redirected. Dead links are reported, not treated as command failures.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckURL,
}

func init() {
	checkURLCmd.Flags().StringVar(&checkURLRemote, "remote", os.Getenv("SCRAPER_FN_URL"), "Hosted scraping function endpoint (defaults to SCRAPER_FN_URL)")
	checkURLCmd.Flags().DurationVar(&checkURLTimeout, "timeout", 60*time.Second, "Overall check timeout")
	rootCmd.AddCommand(checkURLCmd)
}

func runCheckURL(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), checkURLTimeout)
	defer cancel()

	var client scrape.Client
	if checkURLRemote != "" {
		client = scrape.NewRemoteClient(checkURLRemote)
	} else {
		client = scrape.NewLocalClient()
	}

	result := scrape.CheckURLStatus(ctx, client, args[0])

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
