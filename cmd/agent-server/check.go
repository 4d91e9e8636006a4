// cmd/agent-server/check.go
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ai-web-platform/internal/models"
)

const smokePrompt = "A simple todo list app"

// newCheckCommand verifies provider connectivity, then runs one ideation end to end.
func newCheckCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the Gemini credential and run an ideation smoke test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			zapLog, log := newLogger(cfg)
			defer zapLog.Sync()

			out := cmd.OutOrStdout()
			gemini, set := newAgents(cfg, log)

			ctx, cancel := withTimeout(cfg)
			defer cancel()

			fmt.Fprintf(out, "Testing Gemini API (model %s)...\n", gemini.Model())
			reply, err := gemini.Ping(ctx)
			if err != nil {
				return fmt.Errorf("gemini API test failed: %w", err)
			}
			fmt.Fprintf(out, "Gemini API is working. Response: %s\n\n", reply)

			fmt.Fprintln(out, "Testing ideation agent...")
			resp := set.Ideation.Generate(ctx, smokePrompt)
			if !resp.Success {
				return fmt.Errorf("ideation agent test failed: %s", resp.Error)
			}
			name, _, features := models.IdeationSummary(resp.Ideation)
			fmt.Fprintf(out, "Ideation agent is working. Project: %s (%d features)\n", name, len(features))

			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				data, err := json.MarshalIndent(resp.Ideation, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Print the generated ideation")
	return cmd
}
