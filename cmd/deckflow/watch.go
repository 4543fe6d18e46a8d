package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input folder and process new decks",
	Long: `Monitor the configured input folder and process every new .pptx
automatically. Watch mode runs unattended, so descriptions are
auto-approved regardless of the configured review mode.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// No terminal to review on while watching.
	a, err := buildApp(true)
	if err != nil {
		return err
	}

	log := a.log
	cfg := a.cfg

	log.Info(ctx, "========================================")
	log.Info(ctx, "Deck Accessibility Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	w, err := watcher.New(cfg.Paths.Input, a.pipe.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	// Start drains in-flight decks before returning.
	<-done

	log.Info(ctx, "Pipeline stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
