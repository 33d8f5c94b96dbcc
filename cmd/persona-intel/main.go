package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anchal-dev/persona-document-intelligence/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputDir    string
		requestPath string
		outputDir   string
		persona     string
		job         string
		llmBaseURL  string
		llmModel    string
		llmKey      string
		maxSections int
		configPath  string
		pdftotext   bool
		summaryPDF  bool
		verbose     bool
	)

	flag.StringVar(&inputDir, "input", "data/input", "Directory holding the documents to analyze")
	flag.StringVar(&requestPath, "request", "", "Path to a challenge request JSON (optional; synthesized from -input when absent)")
	flag.StringVar(&outputDir, "output", "data/output", "Directory to write analysis outputs into")
	flag.StringVar(&persona, "persona", "", "Persona role when no request file is given")
	flag.StringVar(&job, "job", "", "Job to be done when no request file is given")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for embeddings")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Embeddings model name; empty disables the semantic signal")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the embeddings server")
	flag.IntVar(&maxSections, "max.sections", 5, "Maximum number of ranked sections in the output")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file; explicit flags win over file values")
	flag.BoolVar(&pdftotext, "pdftotext", false, "Shell out to pdftotext when the built-in PDF reader fails")
	flag.BoolVar(&summaryPDF, "summary.pdf", false, "Also render the run summary as a PDF")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		InputDir:          inputDir,
		RequestPath:       requestPath,
		OutputDir:         outputDir,
		Persona:           persona,
		Job:               job,
		LLMBaseURL:        llmBaseURL,
		LLMModel:          llmModel,
		LLMAPIKey:         llmKey,
		MaxSections:       maxSections,
		PdftotextFallback: pdftotext,
		SummaryPDF:        summaryPDF,
		Verbose:           verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("config file unreadable")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
		if cfg.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when there was nothing to analyze, 1 for real
		// failures. The empty-input run still writes its (empty) envelope.
		if errors.Is(err, app.ErrNoDocuments) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
