package analyses

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"resume-quality/internal/shared/apperr"
	"resume-quality/internal/shared/metrics"
	"resume-quality/internal/shared/telemetry"
)

const (
	defaultMaxDocumentBytes = 512 * 1024
	defaultBatchConcurrency = 4
)

type ctxKey int

const requestIDCtxKey ctxKey = iota

// WithRequestID tags ctx so analysis logs can be joined with the request log.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDCtxKey, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey).(string)
	return id
}

// Service validates requests, runs the scoring pipeline and records telemetry.
type Service struct {
	Threshold        int
	MaxDocumentBytes int
	BatchConcurrency int
}

// NewService constructs a Service; zero values fall back to defaults.
func NewService(threshold, maxDocumentBytes, batchConcurrency int) *Service {
	return &Service{
		Threshold:        threshold,
		MaxDocumentBytes: maxDocumentBytes,
		BatchConcurrency: batchConcurrency,
	}
}

func (s *Service) threshold() int {
	if s == nil || s.Threshold <= 0 {
		return DefaultThreshold
	}
	return s.Threshold
}

func (s *Service) maxBytes() int {
	if s == nil || s.MaxDocumentBytes <= 0 {
		return defaultMaxDocumentBytes
	}
	return s.MaxDocumentBytes
}

func (s *Service) concurrency() int {
	if s == nil || s.BatchConcurrency <= 0 {
		return defaultBatchConcurrency
	}
	return s.BatchConcurrency
}

// Validate checks a single request.
func (s *Service) Validate(req Request) error {
	if err := apperr.Struct(req); err != nil {
		return err
	}
	if len(req.Text) > s.maxBytes() {
		return fmt.Errorf("%w (%d bytes, limit %d)", ErrDocumentTooLarge, len(req.Text), s.maxBytes())
	}
	return nil
}

// Analyze scores one document.
func (s *Service) Analyze(ctx context.Context, req Request) (ScoreBreakdown, error) {
	if err := s.Validate(req); err != nil {
		return ScoreBreakdown{}, err
	}
	return s.analyze(ctx, req), nil
}

// AnalyzeBatch scores documents concurrently and returns results in request order.
// Any invalid document fails the whole batch before scoring starts.
func (s *Service) AnalyzeBatch(ctx context.Context, batch BatchRequest) ([]ScoreBreakdown, error) {
	if len(batch.Documents) == 0 {
		return nil, ErrEmptyBatch
	}
	if err := apperr.Struct(batch); err != nil {
		return nil, err
	}
	for i, req := range batch.Documents {
		if err := s.Validate(req); err != nil {
			return nil, fmt.Errorf("documents[%d]: %w", i, err)
		}
	}

	results := make([]ScoreBreakdown, len(batch.Documents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, req := range batch.Documents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.analyze(gctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) analyze(ctx context.Context, req Request) ScoreBreakdown {
	started := time.Now()
	out := AnalyzeWithThreshold(req, s.threshold())
	elapsed := time.Since(started)

	metrics.ObserveAnalysis(string(out.DocumentType), out.PassesQuality, out.CombinedScore, elapsed)
	fields := map[string]any{
		"request_id":     requestIDFrom(ctx),
		"document_type":  out.DocumentType,
		"combined_score": out.CombinedScore,
		"passes":         out.PassesQuality,
		"issues":         out.Counts.Total,
		"duration_ms":    elapsed.Milliseconds(),
	}
	if out.MatchScore != nil {
		fields["match_score"] = *out.MatchScore
	}
	telemetry.Info("analysis.completed", fields)
	if err := validateScoreExplanation(&out.Explanation); err != nil {
		telemetry.Error("analysis.explanation_invalid", map[string]any{
			"request_id": requestIDFrom(ctx),
			"err":        err,
		})
	}
	return out
}
