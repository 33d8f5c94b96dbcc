package app

// Config holds runtime configuration for one analysis run.
type Config struct {
	// InputDir holds the source documents.
	InputDir string
	// RequestPath optionally points to a challenge-format JSON request.
	// When empty, a request is synthesized from InputDir.
	RequestPath string
	// OutputDir receives the JSON envelope and the readable summary.
	OutputDir string

	// Persona / Job are used when no request file is given.
	Persona string
	Job     string

	// Embeddings endpoint (OpenAI-compatible). Optional: without a model the
	// scorer runs on lexical signals only.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Selection
	MaxSections int

	// Behavior
	PdftotextFallback bool
	SummaryPDF        bool
	Verbose           bool
}
