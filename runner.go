package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

const previewLimit = 1000

// BatchRunner iterates the table in order and summarizes every row whose
// summary column is still empty. It owns the in-memory table for the
// duration of a run and is the sole writer of the persisted copy.
type BatchRunner struct {
	summarizer  Summarizer
	errorLog    *ErrorLog
	extras      map[string]string
	dryRun      bool
	maxAttempts int
	baseDelay   time.Duration
	batchSize   int
	batchDelay  time.Duration
}

// NewBatchRunner creates a runner from settings
func NewBatchRunner(summarizer Summarizer, errorLog *ErrorLog, settings *Settings) *BatchRunner {
	return &BatchRunner{
		summarizer:  summarizer,
		errorLog:    errorLog,
		maxAttempts: settings.Retry.MaxAttempts,
		baseDelay:   time.Duration(settings.Retry.BaseDelay),
		batchSize:   settings.Batch.Size,
		batchDelay:  time.Duration(settings.Batch.Delay),
	}
}

// SetDryRun enables preview mode: prompts are rendered but no remote call
// is made and no summary is written.
func (r *BatchRunner) SetDryRun(dryRun bool) {
	r.dryRun = dryRun
}

// SetExtras sets additional template placeholder values
func (r *BatchRunner) SetExtras(extras map[string]string) {
	r.extras = extras
}

// Run processes the table at csvPath with the template at templatePath
// and persists the result atomically. Per-row failures are logged and the
// run continues; template, table and persistence failures are fatal.
func (r *BatchRunner) Run(ctx context.Context, csvPath, templatePath string) (*RunSummary, error) {
	template, err := LoadTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	table, err := LoadTable(csvPath)
	if err != nil {
		return nil, fmt.Errorf("loading table: %w", err)
	}

	summary := &RunSummary{}
	inBatch := 0

	for i := 0; i < table.Len(); i++ {
		id := table.ID(i)

		if strings.TrimSpace(table.Summary(i)) != "" {
			summary.add(RowResult{ID: id, Status: StatusSkipped})
			continue
		}

		prompt := RenderPrompt(template, table.Article(i), r.extras)

		if r.dryRun {
			log.Printf("[dry-run] id=%s prompt preview:\n%s", id, previewText(prompt, previewLimit))
			summary.add(RowResult{ID: id, Status: StatusPreviewed, Preview: prompt})
			continue
		}

		log.Printf("[%d/%d] Summarizing id=%s", i+1, table.Len(), id)

		text, err := withRetry(r.maxAttempts, r.baseDelay, func() (string, error) {
			return r.summarizer.Summarize(ctx, prompt)
		})
		if err != nil {
			var auth *AuthError
			if errors.As(err, &auth) {
				// Credentials rejected mid-run: keep what succeeded so
				// far and abort instead of failing every remaining row.
				if saveErr := table.Save(csvPath); saveErr != nil {
					log.Printf("✗ Failed to persist table after auth failure: %v", saveErr)
				}
				return summary, err
			}

			log.Printf("✗ Failed id=%s: %v", id, err)
			r.errorLog.Log(id, err)
			summary.add(RowResult{ID: id, Status: StatusFailed, Err: err})
		} else {
			table.SetSummary(i, text)
			log.Printf("✓ Summarized id=%s", id)
			summary.add(RowResult{ID: id, Status: StatusSucceeded})
		}

		inBatch++
		if r.batchSize > 0 && inBatch >= r.batchSize && i < table.Len()-1 {
			inBatch = 0
			time.Sleep(r.batchDelay)
		}
	}

	if err := table.Save(csvPath); err != nil {
		return summary, fmt.Errorf("persisting table: %w", err)
	}

	return summary, nil
}

func previewText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
