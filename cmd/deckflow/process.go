package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <deck.pptx>",
	Short: "Process a single presentation",
	Long: `Process one deck end to end: parse, index, describe images, run the
review loop, generate speaker notes and write the augmented copy to the
output folder.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	a, err := buildApp(false)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.pipe.Process(ctx, args[0])
}
