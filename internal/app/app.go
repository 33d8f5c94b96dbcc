package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/anchal-dev/persona-document-intelligence/internal/analyze"
	"github.com/anchal-dev/persona-document-intelligence/internal/embed"
	"github.com/anchal-dev/persona-document-intelligence/internal/ingest"
	"github.com/anchal-dev/persona-document-intelligence/internal/rank"
	"github.com/anchal-dev/persona-document-intelligence/internal/refine"
	"github.com/anchal-dev/persona-document-intelligence/internal/report"
	"github.com/anchal-dev/persona-document-intelligence/internal/request"
)

// ErrNoDocuments is returned when the input directory yields zero usable
// documents. The run still writes an envelope with empty lists; the sentinel
// lets the CLI apply its exit-code policy.
var ErrNoDocuments = fmt.Errorf("no input documents")

// App wires the pipeline together for one run.
type App struct {
	cfg      Config
	embedder *embed.Embedder
}

// New builds an App. An embeddings backend is configured only when a model is
// set; without one the scorer runs on lexical signals alone.
func New(ctx context.Context, cfg Config) (*App, error) {
	a := &App{cfg: cfg}
	if cfg.LLMModel != "" {
		transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			transportCfg.BaseURL = cfg.LLMBaseURL
		}
		client := openai.NewClientWithConfig(transportCfg)
		a.embedder = &embed.Embedder{Client: client, Model: cfg.LLMModel}
		log.Info().Str("model", cfg.LLMModel).Msg("embeddings enabled")
	} else {
		log.Info().Msg("no embeddings model configured; semantic signal disabled")
	}
	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

// Run executes the full pipeline: request, ingest, analyze, rank, refine,
// report.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()

	// 1) Resolve the analysis request.
	req, err := a.loadRequest()
	if err != nil {
		return err
	}
	log.Info().
		Str("persona", req.Persona).
		Str("job", req.Job).
		Int("documents", len(req.Documents)).
		Msg("starting analysis")

	// 2) Ingest documents and keep only those the request names.
	processor := &ingest.Processor{InputDir: a.cfg.InputDir, PdftotextFallback: a.cfg.PdftotextFallback}
	docs, err := processor.ProcessAll(ctx)
	if err != nil {
		return fmt.Errorf("process documents: %w", err)
	}
	if len(req.Documents) > 0 {
		requested := req.Filenames()
		kept := docs[:0]
		for _, doc := range docs {
			if requested[doc.Filename] {
				kept = append(kept, doc)
			}
		}
		docs = kept
	}

	// 3) Persona-driven analysis.
	analyzer := &analyze.Analyzer{Persona: req.Persona, Job: req.Job, Embedder: a.embedder}
	analysis := analyzer.AnalyzeDocuments(ctx, docs)

	docIndex := make(map[string]ingest.Document, len(docs))
	for _, doc := range docs {
		docIndex[doc.Filename] = doc
	}

	// 4) Rank sections; fall back to input order when analysis found nothing.
	limit := a.cfg.MaxSections
	if limit <= 0 {
		limit = rank.MaxSections
	}
	sections := (&rank.AnalysisSource{Documents: docIndex, Analyses: analysis.DocumentAnalyses}).Sections(limit)
	if len(sections) == 0 {
		sections = (&rank.FallbackSource{Documents: docs}).Sections(limit)
	}

	// 5) Refine subsections; same degraded mode when no extracts exist.
	subsections := refine.FromAnalyses(analysis.DocumentAnalyses, docIndex)
	if len(subsections) == 0 {
		subsections = refine.FromDocuments(docs)
	}

	// 6) Assemble and write outputs.
	env := report.Build(req, sections, subsections, start, time.Since(start))
	if err := a.writeOutputs(req, env, report.Digests(analysis.DocumentAnalyses)); err != nil {
		return err
	}
	log.Info().
		Int("sections", len(env.ExtractedSections)).
		Int("subsections", len(env.SubsectionAnalysis)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	if len(docs) == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (a *App) loadRequest() (request.Request, error) {
	if a.cfg.RequestPath != "" {
		req, err := request.Load(a.cfg.RequestPath)
		if err != nil {
			return request.Request{}, fmt.Errorf("load request: %w", err)
		}
		return req, nil
	}
	req, err := request.FromDirectory(a.cfg.InputDir, a.cfg.Persona, a.cfg.Job, ingest.Supported)
	if err != nil {
		return request.Request{}, fmt.Errorf("synthesize request: %w", err)
	}
	return req, nil
}

func (a *App) writeOutputs(req request.Request, env report.Envelope, digests []report.DocumentDigest) error {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("challenge_output_%s_%s", sanitizeID(req.ChallengeID), stamp)

	data, err := env.MarshalIndent()
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(a.cfg.OutputDir, base+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", jsonPath).Msg("wrote analysis output")

	summary := report.Summary(env, digests)
	summaryPath := filepath.Join(a.cfg.OutputDir, strings.Replace(base, "challenge_output", "challenge_summary", 1)+".txt")
	if err := os.WriteFile(summaryPath, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	log.Info().Str("out", summaryPath).Msg("wrote readable summary")

	if len(digests) > 0 {
		detail, err := json.MarshalIndent(digests, "", "    ")
		if err != nil {
			return fmt.Errorf("marshal analysis digests: %w", err)
		}
		analysisPath := filepath.Join(a.cfg.OutputDir, strings.Replace(base, "challenge_output", "challenge_analysis", 1)+".json")
		if err := os.WriteFile(analysisPath, detail, 0o644); err != nil {
			return fmt.Errorf("write analysis digests: %w", err)
		}
		log.Info().Str("out", analysisPath).Msg("wrote per-document analysis")
	}

	if a.cfg.SummaryPDF {
		pdfPath := strings.TrimSuffix(summaryPath, ".txt") + ".pdf"
		if err := writeSummaryPDF(summary, pdfPath); err != nil {
			// The PDF is a convenience artifact; the run already succeeded.
			log.Warn().Err(err).Msg("summary PDF rendering failed")
		} else {
			log.Info().Str("out", pdfPath).Msg("wrote summary PDF")
		}
	}
	return nil
}

func sanitizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
