package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

func TestDetectMode_Plain(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"explicit plain", map[string]string{"TENANTLOAD_PLAIN": "1", "CI": "", "NO_COLOR": ""}},
		{"ci", map[string]string{"TENANTLOAD_PLAIN": "", "CI": "true", "NO_COLOR": ""}},
		{"no color", map[string]string{"TENANTLOAD_PLAIN": "", "CI": "", "NO_COLOR": "1"}},
		// In test context, stdout is not a terminal
		{"no terminal", map[string]string{"TENANTLOAD_PLAIN": "", "CI": "", "NO_COLOR": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, ModePlain, DetectMode())
			assert.False(t, IsStyled())
		})
	}
}

func sampleOutcome() tenantload.Outcome {
	return tenantload.Outcome{
		Loaded: 3,
		Rules: []tenantload.RuleResult{
			{Key: "loadReference", URIPath: "groups", SourceDir: "ref-data/groups", Files: 2},
			{Key: "loadSample", URIPath: "users", SourceDir: "sample-data/users", Files: 1},
		},
	}
}

func TestPrinter_OutcomePlain(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Outcome(sampleOutcome(), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "loadReference")
	assert.Contains(t, lines[0], "ref-data/groups → groups")
	assert.Contains(t, lines[0], "2 files")
	assert.Equal(t, "Loaded 3 files", lines[2])
}

func TestPrinter_OutcomeFailure(t *testing.T) {
	var buf bytes.Buffer
	err := &tenantload.StatusError{Method: "PUT", URL: "http://okapi/users/u1", StatusCode: 500}
	NewPrinter(&buf, false).Outcome(tenantload.Outcome{Loaded: 2}, err)

	assert.Equal(t, "Load failed after 2 files: PUT http://okapi/users/u1 returned status 500\n", buf.String())
}

func TestPrinter_OutcomeStyled(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).Outcome(sampleOutcome(), nil)

	out := buf.String()
	assert.Contains(t, out, "tenantload")
	assert.Contains(t, out, "Loaded 3 files")
	assert.Contains(t, out, SymbolCheck)

	buf.Reset()
	NewPrinter(&buf, true).Outcome(tenantload.Outcome{}, errors.New("boom"))
	assert.Contains(t, buf.String(), SymbolCross)
}

func TestPrinter_Plan(t *testing.T) {
	planned := []tenantload.PlannedUpload{
		{Key: "loadReference", Resource: tenantload.Resource{Path: "ref-data/groups/staff.json"}, ID: "g1", Method: "PUT", URL: "http://okapi/groups/g1"},
		{Key: "loadSample", Resource: tenantload.Resource{Path: "sample-data/batch/a.json"}, Method: "POST", URL: "http://okapi/batch"},
	}

	var buf bytes.Buffer
	NewPrinter(&buf, false).Plan(planned)

	assert.Equal(t, "PUT  http://okapi/groups/g1 (ref-data/groups/staff.json)\n"+
		"POST http://okapi/batch (sample-data/batch/a.json)\n"+
		"2 files would be loaded\n", buf.String())
}
