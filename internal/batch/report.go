// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintelligence/asset-converter/pkg/types"
)

// FileResult is one line of the run report: what happened to one source
// file (or one written output, for multi-page sources).
type FileResult struct {
	Source  string `yaml:"source"`
	Output  string `yaml:"output,omitempty"`
	Status  string `yaml:"status"`
	Caption string `yaml:"caption,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

// Report is the YAML run report written when a report path is set. It
// records the effective configuration so a run can be reproduced from
// its report alone.
type Report struct {
	Timestamp time.Time       `yaml:"timestamp"`
	Config    types.RunConfig `yaml:"config"`
	Files     []FileResult    `yaml:"files"`
	Summary   Summary         `yaml:"summary"`
}

// NewReport starts a report for one run with the effective config.
func NewReport(cfg types.RunConfig) *Report {
	return &Report{Timestamp: time.Now().UTC(), Config: cfg}
}

// Add appends one file outcome.
func (r *Report) Add(fr FileResult) {
	r.Files = append(r.Files, fr)
}

// WriteFile finalizes the report with the run summary and writes it as
// YAML to path.
func (r *Report) WriteFile(path string, s Summary) error {
	r.Summary = s
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
