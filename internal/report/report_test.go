package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/moddoc/internal/model"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		name string
		r    RunReport
		want Outcome
	}{
		{"no modules", RunReport{}, OutcomeSuccess},
		{"all clean", RunReport{Modules: []ModuleResult{{Module: "a"}, {Module: "b"}}}, OutcomeSuccess},
		{"all failed", RunReport{Modules: []ModuleResult{{Module: "a", Error: "x"}}}, OutcomeFailed},
		{"some failed", RunReport{Modules: []ModuleResult{{Module: "a", Error: "x"}, {Module: "b"}}}, OutcomePartial},
		{"warnings degrade", RunReport{Modules: []ModuleResult{{Module: "a", Warnings: []string{"w"}}}}, OutcomePartial},
		{"renderer errors degrade", RunReport{Modules: []ModuleResult{{Module: "a", RendererErrors: map[string]string{"markdown": "x"}}}}, OutcomePartial},
		{"canceled wins", RunReport{Canceled: true, Modules: []ModuleResult{{Module: "a"}}}, OutcomeCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.Outcome())
		})
	}
}

func TestRecordStage(t *testing.T) {
	var r RunReport
	r.RecordStage("ingest", 1500*time.Millisecond)
	r.RecordStage("render", 30*time.Millisecond)

	assert.Equal(t, int64(1500), r.StageDurations["ingest"])
	assert.Equal(t, int64(30), r.StageDurations["render"])
}

func TestSetStats(t *testing.T) {
	var m ModuleResult
	m.SetStats(model.Stats{Namespaces: 2, Types: 5, ExternalTypes: 1, Members: 12})

	assert.Equal(t, 2, m.Namespaces)
	assert.Equal(t, 5, m.Types)
	assert.Equal(t, 1, m.ExternalTypes)
	assert.Equal(t, 12, m.Members)
	assert.False(t, m.Failed())
}
