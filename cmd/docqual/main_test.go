package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-quality/internal/shared/telemetry"
)

const cliResume = `Jane Doe
jane@example.com

EXPERIENCE
- Built Go services on Kubernetes serving 2M requests per day.
- Led migration of billing to Postgres, cutting costs by 30%.

SKILLS
Go, Kubernetes, Postgres, Terraform
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	restore := telemetry.SetOutput(io.Discard)
	t.Cleanup(restore)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeCommandRequiresFile(t *testing.T) {
	_, err := execute(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestAnalyzeCommandScoresTextFile(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "resume.txt", cliResume)

	out, err := execute(t, "analyze", "--file", doc, "--type", "resume", "--keywords", "go,rust")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "resume", result["documentType"])
	assert.EqualValues(t, 50, result["matchScore"])
}

func TestAnalyzeCommandReadabilityOverride(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "resume.txt", cliResume)

	out, err := execute(t, "analyze", "-f", doc, "--readability", "0")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.EqualValues(t, 0, result["readabilityScore"])
	assert.Nil(t, result["matchScore"])
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	_, err := execute(t, "analyze", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read document")
}

const cliChanges = `[
  {"id": "c1", "category": "wording", "original": "did stuff", "suggested": "Shipped billing v2", "impact": "high", "confidence": 90},
  {"id": "c2", "category": "format", "original": "", "suggested": "Add dates", "impact": "low", "confidence": 40}
]`

type cliReport struct {
	Workflow struct {
		Status string `json:"status"`
	} `json:"workflow"`
	Batches []struct {
		Applied int    `json:"applied"`
		Status  string `json:"status"`
		Errors  []struct {
			ChangeID string `json:"changeId"`
			Code     string `json:"code"`
		} `json:"errors"`
		Failure string `json:"failure"`
	} `json:"batches"`
}

func TestWorkflowSimulateSingleBatch(t *testing.T) {
	dir := t.TempDir()
	changes := writeFile(t, dir, "changes.json", cliChanges)
	decisions := writeFile(t, dir, "decisions.json", `[
  {"changeId": "c1", "approved": true},
  {"changeId": "nope", "approved": false}
]`)

	out, err := execute(t, "workflow", "simulate", "--changes", changes, "--decisions", decisions)
	require.NoError(t, err)

	var report cliReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "in_review", report.Workflow.Status)
	require.Len(t, report.Batches, 1)
	assert.Equal(t, 1, report.Batches[0].Applied)
	require.Len(t, report.Batches[0].Errors, 1)
	assert.Equal(t, "nope", report.Batches[0].Errors[0].ChangeID)
	assert.Equal(t, "change_not_found", report.Batches[0].Errors[0].Code)
}

func TestWorkflowSimulateRejectsBatchAfterCompletion(t *testing.T) {
	dir := t.TempDir()
	changes := writeFile(t, dir, "changes.json", cliChanges)
	decisions := writeFile(t, dir, "decisions.json", `[
  [{"changeId": "c1", "approved": true}],
  [{"changeId": "c2", "approved": false}],
  [{"changeId": "c1", "approved": false}]
]`)

	out, err := execute(t, "workflow", "simulate", "--changes", changes, "--decisions", decisions)
	require.NoError(t, err)

	var report cliReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Batches, 3)
	assert.Equal(t, "in_review", report.Batches[0].Status)
	assert.Equal(t, "completed", report.Batches[1].Status)
	assert.NotEmpty(t, report.Batches[2].Failure)
	assert.Equal(t, "completed", report.Workflow.Status)
}

func TestWorkflowSimulateWithoutDecisions(t *testing.T) {
	dir := t.TempDir()
	changes := writeFile(t, dir, "changes.json", cliChanges)

	out, err := execute(t, "workflow", "simulate", "--changes", changes)
	require.NoError(t, err)

	var report cliReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "draft", report.Workflow.Status)
	assert.Empty(t, report.Batches)
}

func TestWorkflowSimulateRejectsEmptyChanges(t *testing.T) {
	dir := t.TempDir()
	changes := writeFile(t, dir, "changes.json", `[]`)

	_, err := execute(t, "workflow", "simulate", "--changes", changes)
	assert.Error(t, err)
}

func TestAnalyzeCommandRejectsThresholdOutOfRange(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "resume.txt", cliResume)

	for _, value := range []string{"0", "101"} {
		_, err := execute(t, "analyze", "--file", doc, "--threshold", value)
		require.Error(t, err, value)
		assert.Contains(t, err.Error(), "--threshold")
	}
}
