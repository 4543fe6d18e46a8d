package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manhnguyen1206/deckflow/internal/chroma"
	"github.com/manhnguyen1206/deckflow/internal/config"
	"github.com/manhnguyen1206/deckflow/internal/describe"
	"github.com/manhnguyen1206/deckflow/internal/gemini"
	"github.com/manhnguyen1206/deckflow/internal/imaging"
	"github.com/manhnguyen1206/deckflow/internal/index"
	"github.com/manhnguyen1206/deckflow/internal/logger"
	"github.com/manhnguyen1206/deckflow/internal/notes"
	"github.com/manhnguyen1206/deckflow/internal/ocr"
	"github.com/manhnguyen1206/deckflow/internal/pipeline"
	"github.com/manhnguyen1206/deckflow/internal/report"
	"github.com/manhnguyen1206/deckflow/internal/review"
	"github.com/manhnguyen1206/deckflow/pkg/executor"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "deckflow",
	Short: "Augment PowerPoint decks with accessibility metadata",
	Long: `Deckflow parses .pptx decks, generates image descriptions and speaker
notes with a retrieval-grounded vision model, and writes the approved
results back into the deck as alt text and notes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired pipeline with its configuration and logger.
type app struct {
	cfg  *config.Config
	log  logger.Logger
	pipe pipeline.Pipeline
}

// buildApp loads configuration and wires every pipeline dependency.
// forceAuto overrides the configured review mode; the watch loop uses
// it because there is no terminal to review on.
func buildApp(forceAuto bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	exec := executor.New()
	converter := imaging.New(exec, log)
	extractor := ocr.New(cfg.OCR, exec, log)

	chromaClient := chroma.New(cfg.Chroma)
	idx := index.New(chromaClient, log)

	llm := gemini.New(cfg.Gemini, log)
	describer := describe.New(idx, llm, extractor, cfg, log)

	var reviewer review.Reviewer
	if forceAuto {
		reviewer = review.NewAutoReviewer(log)
	} else {
		reviewer = review.NewReviewer(cfg, log)
	}
	workflow := review.New(reviewer, describer, cfg, log)

	notesGen := notes.New(llm, log)
	reportWriter := report.New(cfg, log)

	pipe := pipeline.New(cfg, converter, idx, describer, workflow, notesGen, reportWriter, log)

	return &app{cfg: cfg, log: log, pipe: pipe}, nil
}
