// Package main provides the entry point for the SEOPilot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seopilot",
	Short: "SEOPilot HTTP API Server",
	Long:  "SEOPilot tracks the pages of SEO projects, scrapes and audits them, and manages the remediation tasks that come out of the audits via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
