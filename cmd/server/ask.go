package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the built-in topics in match order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTopics()
		if err != nil {
			return err
		}
		for _, name := range table.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and print the HTML response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver(cmd.Context())
		if err != nil {
			return err
		}
		answer := r.Resolve(cmd.Context(), strings.Join(args, " "))
		logger.Debug("resolved", zap.String("source", answer.Source), zap.Int("attempts", answer.Attempts))
		fmt.Fprintln(cmd.OutOrStdout(), answer.HTML)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Make one diagnostic call to the Gemini API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver(cmd.Context())
		if err != nil {
			return err
		}
		if err := r.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("API error: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API working")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd, askCmd, pingCmd)
}
