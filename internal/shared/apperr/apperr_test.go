package apperr

import (
	"errors"
	"fmt"
	"sort"
	"testing"
)

type sampleItem struct {
	ID string `json:"id" validate:"required"`
}

type sampleRequest struct {
	Name  string       `json:"name" validate:"required"`
	Score int          `json:"score" validate:"min=0,max=100"`
	Items []sampleItem `json:"items" validate:"required,min=1,dive"`
}

func TestStructReportsJSONFieldPaths(t *testing.T) {
	err := Struct(sampleRequest{Score: 101, Items: []sampleItem{{}}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	got := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		got = append(got, f.Field+": "+f.Issue)
	}
	sort.Strings(got)
	want := []string{"items[0].id: required", "name: required", "score: must be at most 100"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
}

func TestStructValid(t *testing.T) {
	if err := Struct(sampleRequest{Name: "x", Score: 5, Items: []sampleItem{{ID: "a"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWrappedSentinels(t *testing.T) {
	closed := fmt.Errorf("%w: workflow closed", ErrConflict)
	if !errors.Is(fmt.Errorf("submit: %w", closed), ErrConflict) {
		t.Fatalf("wrapped conflict lost its sentinel")
	}
	if !errors.Is(Invalid("changes", "required"), ErrValidation) {
		t.Fatalf("Invalid should match ErrValidation")
	}
	if errors.Is(Invalid("changes", "required"), ErrNotFound) {
		t.Fatalf("Invalid should not match ErrNotFound")
	}
}
