package analyses

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-quality/internal/match"
	"resume-quality/internal/shared/apperr"
	"resume-quality/internal/shared/telemetry"
)

func TestServiceAnalyzeUsesConfiguredThreshold(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()

	strict := NewService(101, 0, 0)
	out, err := strict.Analyze(context.Background(), Request{Text: sampleResume, DocumentType: "resume"})
	require.NoError(t, err)
	assert.Equal(t, 101, out.Threshold)
	assert.False(t, out.PassesQuality)

	lenient := NewService(1, 0, 0)
	out, err = lenient.Analyze(context.Background(), Request{Text: sampleResume, DocumentType: "resume"})
	require.NoError(t, err)
	assert.True(t, out.PassesQuality)
}

func TestServiceAnalyzeRejectsInvalidInput(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	svc := NewService(0, 64, 0)

	_, err := svc.Analyze(context.Background(), Request{Text: strings.Repeat("a", 65)})
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	bad := 101
	_, err = svc.Analyze(context.Background(), Request{Text: "hello", ReadabilityScore: &bad})
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "readabilityScore", verr.Fields[0].Field)

	_, err = svc.Analyze(context.Background(), Request{
		Text: "hello",
		Job:  &match.JobContext{Keywords: []string{strings.Repeat("k", 101)}},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestServiceAnalyzeBatchPreservesOrder(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	svc := NewService(0, 0, 2)

	batch := BatchRequest{Documents: []Request{
		{Text: sampleResume, DocumentType: "resume"},
		{Text: "", DocumentType: "cover_letter"},
		{Text: "Plain notes about the project.", DocumentType: "other"},
		{Text: sampleResume, DocumentType: "other"},
	}}
	results, err := svc.AnalyzeBatch(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, results, len(batch.Documents))

	for i, req := range batch.Documents {
		assert.Equal(t, AnalyzeWithThreshold(req, DefaultThreshold), results[i], "result %d", i)
	}
}

func TestServiceAnalyzeBatchValidation(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	svc := NewService(0, 16, 0)

	_, err := svc.AnalyzeBatch(context.Background(), BatchRequest{})
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = svc.AnalyzeBatch(context.Background(), BatchRequest{Documents: []Request{
		{Text: "short"},
		{Text: strings.Repeat("b", 17)},
	}})
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
	assert.Contains(t, err.Error(), "documents[1]")

	tooMany := make([]Request, 51)
	_, err = svc.AnalyzeBatch(context.Background(), BatchRequest{Documents: tooMany})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestServiceAnalyzeBatchCancelled(t *testing.T) {
	defer telemetry.SetOutput(io.Discard)()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(0, 0, 1).AnalyzeBatch(ctx, BatchRequest{Documents: []Request{{Text: "hello"}}})
	assert.ErrorIs(t, err, context.Canceled)
}
