package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// Global flags
	serverURL string
	timeout   int

	// Ask command flags
	classLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "notesctl",
	Short:   "Query a running notes-orchestrator server",
	Version: version,
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed notes",
	Long: `Ask a question against the indexed notes and print the answer with
its sources.

Examples:
  # Unscoped question
  notesctl ask "What is a tissue?"

  # Scoped to one class level
  notesctl ask --class 9 "What is a tissue?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server liveness and readiness",
	RunE:  runHealth,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9020", "base URL of the notes-orchestrator server")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 180, "request timeout in seconds")

	askCmd.Flags().StringVar(&classLevel, "class", "general", "class level scope (9-12 or general)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(healthCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	payload, err := json.Marshal(map[string]string{
		"question":    args[0],
		"class_level": classLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	resp, err := client.Post(serverURL+"/v1/notes/ask", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to call server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var answer struct {
		Answer            string   `json:"answer"`
		Sources           []string `json:"sources"`
		InjectionDetected bool     `json:"injection_detected"`
	}
	if err := json.Unmarshal(body, &answer); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Println(answer.Answer)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range answer.Sources {
			fmt.Printf("  - %s\n", src)
		}
	}
	if answer.InjectionDetected {
		fmt.Println("\n(request was flagged by the injection guard)")
	}
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}

	for _, probe := range []string{"/healthz", "/readyz"} {
		resp, err := client.Get(serverURL + probe)
		if err != nil {
			return fmt.Errorf("failed to call %s: %w", probe, err)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		fmt.Printf("%s: %d %s\n", probe, resp.StatusCode, string(bytes.TrimSpace(body)))
	}
	return nil
}
