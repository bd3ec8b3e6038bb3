package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var assistJSON bool

var assistCmd = &cobra.Command{
	Use:   "assist <prompt>",
	Short: "Send a prompt to the Gemini assistant",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		completer, err := createCompleter(cfg, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		prompt := strings.Join(args, " ")
		if !assistJSON {
			text, err := completer.Complete(ctx, prompt)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		}

		var value any
		if err := completer.CompleteStructured(ctx, prompt, nil, &value); err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	},
}

func init() {
	assistCmd.Flags().BoolVar(&assistJSON, "json", false, "ask for a JSON answer and pretty-print it")
	rootCmd.AddCommand(assistCmd)
}
