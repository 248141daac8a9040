package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-quality/internal/workflows"
)

type simulateOptions struct {
	changesFile   string
	decisionsFile string
}

// simulateReport is the outcome of replaying decision batches.
type simulateReport struct {
	Workflow workflows.Workflow     `json:"workflow"`
	Batches  []simulateBatchOutcome `json:"batches"`
}

type simulateBatchOutcome struct {
	Applied int                   `json:"applied"`
	Status  workflows.Status      `json:"status"`
	Errors  []workflows.ItemError `json:"errors"`
	Failure string                `json:"failure,omitempty"`
}

func newWorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Approval workflow tools",
	}
	cmd.AddCommand(newSimulateCmd())
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var opts simulateOptions
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay decision batches against an in-memory workflow",
		Long:  "Create a workflow from a JSON array of suggested changes and apply decision batches from a JSON file. The decisions file holds one batch (an array of decisions) or a list of batches.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.changesFile, "changes", "", "Path to a JSON array of suggested changes (required)")
	cmd.Flags().StringVar(&opts.decisionsFile, "decisions", "", "Path to a JSON file of decision batches")
	_ = cmd.MarkFlagRequired("changes")
	return cmd
}

func runSimulate(cmd *cobra.Command, opts simulateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var changes []workflows.SuggestedChange
	if err := readJSONFile(opts.changesFile, &changes); err != nil {
		return fmt.Errorf("failed to read changes: %w", err)
	}
	batches, err := readDecisionBatches(opts.decisionsFile)
	if err != nil {
		return fmt.Errorf("failed to read decisions: %w", err)
	}

	svc := workflows.NewService(workflows.NewMemoryRepo())
	w, err := svc.Create(ctx, workflows.CreateRequest{Changes: changes})
	if err != nil {
		return err
	}

	report := simulateReport{Workflow: w, Batches: []simulateBatchOutcome{}}
	for _, batch := range batches {
		res, err := svc.SubmitDecisions(ctx, w.ID, workflows.DecisionRequest{Decisions: batch})
		if err != nil {
			report.Batches = append(report.Batches, simulateBatchOutcome{
				Status:  report.Workflow.Status,
				Errors:  []workflows.ItemError{},
				Failure: err.Error(),
			})
			continue
		}
		report.Workflow = res.Workflow
		report.Batches = append(report.Batches, simulateBatchOutcome{
			Applied: len(batch) - len(res.Errors),
			Status:  res.Workflow.Status,
			Errors:  res.Errors,
		})
	}
	return writeJSON(cmd, report)
}

func readDecisionBatches(path string) ([][]workflows.Decision, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var batches [][]workflows.Decision
	if err := json.Unmarshal(raw, &batches); err == nil {
		return batches, nil
	}
	var single []workflows.Decision
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return [][]workflows.Decision{single}, nil
}

func readJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
