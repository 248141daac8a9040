package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-quality/internal/analyses"
	"resume-quality/internal/extract"
	"resume-quality/internal/match"
)

type analyzeOptions struct {
	file        string
	docType     string
	jobFile     string
	keywords    []string
	readability int
	threshold   int
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score a document and print the breakdown as JSON",
		Long:  "Score a PDF, DOCX or text document for grammar, readability and ATS fit. A job description file or keyword list enables match scoring.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			readabilitySet := cmd.Flags().Changed("readability")
			return runAnalyze(cmd, opts, readabilitySet)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the document (required)")
	cmd.Flags().StringVarP(&opts.docType, "type", "t", "", "Document type: resume, cover_letter or other")
	cmd.Flags().StringVar(&opts.jobFile, "job-file", "", "Path to a job description text file")
	cmd.Flags().StringSliceVar(&opts.keywords, "keywords", nil, "Comma-separated job keywords")
	cmd.Flags().IntVar(&opts.readability, "readability", 0, "Externally computed readability score (0-100)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", analyses.DefaultThreshold, "Combined score needed to pass (1-100)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions, readabilitySet bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.threshold < 1 || opts.threshold > 100 {
		return fmt.Errorf("--threshold must be between 1 and 100, got %d", opts.threshold)
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	text, err := extract.Text(ctx, data, "", filepath.Base(opts.file))
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	req := analyses.Request{Text: text, DocumentType: opts.docType}
	job, err := loadJob(opts.jobFile, opts.keywords)
	if err != nil {
		return err
	}
	req.Job = job
	if readabilitySet {
		score := opts.readability
		req.ReadabilityScore = &score
	}

	svc := analyses.NewService(opts.threshold, len(data)+1, 1)
	out, err := svc.Analyze(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(cmd, out)
}

func loadJob(jobFile string, keywords []string) (*match.JobContext, error) {
	var job match.JobContext
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			job.Keywords = append(job.Keywords, k)
		}
	}
	if jobFile != "" {
		raw, err := os.ReadFile(jobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file: %w", err)
		}
		job.Description = string(raw)
	}
	if len(job.Keywords) == 0 && strings.TrimSpace(job.Description) == "" {
		return nil, nil
	}
	return &job, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
