// Package request parses the analysis request: which documents to consider,
// the persona, and the job-to-be-done. The wire format follows the external
// challenge contract; when no request file is supplied a request is
// synthesized from the input directory instead.
package request

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Defaults applied when the request leaves persona or job empty.
const (
	DefaultPersona = "Generic Analyst"
	DefaultJob     = "Analyze documents for key insights"
)

// DocumentRef names one requested input document.
type DocumentRef struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
}

// Request is the distilled analysis request. Raw retains the original bytes
// for traceability.
type Request struct {
	ChallengeID string
	Description string
	Documents   []DocumentRef
	Persona     string
	Job         string
	Raw         []byte
}

// challengeInput mirrors the external challenge JSON schema.
type challengeInput struct {
	ChallengeInfo struct {
		ChallengeID  string `json:"challenge_id"`
		TestCaseName string `json:"test_case_name"`
		Description  string `json:"description"`
	} `json:"challenge_info"`
	Documents []DocumentRef `json:"documents"`
	Persona   struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// Parse decodes a challenge-format request. Missing persona or job fall back
// to generic defaults rather than failing.
func Parse(data []byte) (Request, error) {
	var in challengeInput
	if err := json.Unmarshal(data, &in); err != nil {
		return Request{}, fmt.Errorf("parse request json: %w", err)
	}
	req := Request{
		ChallengeID: in.ChallengeInfo.ChallengeID,
		Description: in.ChallengeInfo.Description,
		Documents:   in.Documents,
		Persona:     strings.TrimSpace(in.Persona.Role),
		Job:         strings.TrimSpace(in.JobToBeDone.Task),
		Raw:         data,
	}
	if req.ChallengeID == "" {
		req.ChallengeID = "unknown"
	}
	if req.Persona == "" {
		req.Persona = DefaultPersona
	}
	if req.Job == "" {
		req.Job = DefaultJob
	}
	return req, nil
}

// Load reads and parses a request file.
func Load(path string) (Request, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read request: %w", err)
	}
	return Parse(b)
}

// FromDirectory synthesizes a request from the supported files found in dir,
// for runs that supply persona and job on the command line instead of a
// request file.
func FromDirectory(dir, persona, job string, supported func(name string) bool) (Request, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Request{}, fmt.Errorf("read input dir: %w", err)
	}
	var docs []DocumentRef
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		name := e.Name()
		docs = append(docs, DocumentRef{
			Filename: name,
			Title:    strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })

	req := Request{
		ChallengeID: "interactive",
		Description: "Directory analysis",
		Documents:   docs,
		Persona:     strings.TrimSpace(persona),
		Job:         strings.TrimSpace(job),
	}
	if req.Persona == "" {
		req.Persona = DefaultPersona
	}
	if req.Job == "" {
		req.Job = DefaultJob
	}
	return req, nil
}

// Filenames returns the requested document names as a set for O(1) lookup.
func (r Request) Filenames() map[string]bool {
	set := make(map[string]bool, len(r.Documents))
	for _, d := range r.Documents {
		set[d.Filename] = true
	}
	return set
}
