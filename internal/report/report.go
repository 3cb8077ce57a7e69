// Package report collects per-run outcomes so batch operations surface
// partial success per unit of work instead of all-or-nothing failure.
package report

import (
	"time"

	"git.home.luguber.info/inful/moddoc/internal/model"
)

// Outcome classifies a finished run.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomePartial  Outcome = "partial"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// ModuleResult is the outcome for one (module, comment source) pair.
type ModuleResult struct {
	Module string `json:"module"`
	// Error is set when ingestion failed fatally for this module. Other
	// modules in the batch are unaffected.
	Error          string            `json:"error,omitempty"`
	Namespaces     int               `json:"namespaces"`
	Types          int               `json:"types"`
	ExternalTypes  int               `json:"external_types"`
	Members        int               `json:"members"`
	Warnings       []string          `json:"warnings,omitempty"`
	RendererErrors map[string]string `json:"renderer_errors,omitempty"`
}

// Failed reports whether the module produced no usable output.
func (m ModuleResult) Failed() bool { return m.Error != "" }

// SetStats copies graph counters into the result.
func (m *ModuleResult) SetStats(s model.Stats) {
	m.Namespaces = s.Namespaces
	m.Types = s.Types
	m.ExternalTypes = s.ExternalTypes
	m.Members = s.Members
}

// RunReport is the full record of one generation run.
type RunReport struct {
	RunID    string         `json:"run_id"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
	Canceled bool           `json:"canceled,omitempty"`
	Modules  []ModuleResult `json:"modules"`
	// StageDurations holds wall time per stage in milliseconds, keyed by
	// stage name.
	StageDurations map[string]int64 `json:"stage_durations_ms,omitempty"`
}

// RecordStage stores a stage duration.
func (r *RunReport) RecordStage(stage string, d time.Duration) {
	if r.StageDurations == nil {
		r.StageDurations = make(map[string]int64)
	}
	r.StageDurations[stage] = d.Milliseconds()
}

// Outcome derives the run classification from the per-module results.
func (r *RunReport) Outcome() Outcome {
	if r.Canceled {
		return OutcomeCanceled
	}
	failed := 0
	degraded := false
	for _, m := range r.Modules {
		if m.Failed() {
			failed++
			continue
		}
		if len(m.Warnings) > 0 || len(m.RendererErrors) > 0 {
			degraded = true
		}
	}
	switch {
	case len(r.Modules) > 0 && failed == len(r.Modules):
		return OutcomeFailed
	case failed > 0 || degraded:
		return OutcomePartial
	default:
		return OutcomeSuccess
	}
}
