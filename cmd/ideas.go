package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas <topic>",
	Short: "Generate blog post ideas for a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.TrimSpace(strings.Join(args, " "))
		if topic == "" {
			return fmt.Errorf("topic cannot be empty")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		completer, err := createCompleter(cfg, logger)
		if err != nil && cfg.BackendURL == "" {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		ideas, err := newIdeaGenerator(cfg, completer, logger).GenerateIdeas(ctx, topic)
		if err != nil {
			return err
		}
		for i, idea := range ideas {
			fmt.Printf("%d. %s\n   %s\n", i+1, idea.Title, idea.Summary)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ideasCmd)
}
