package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linkmart/admin-api/internal/ports"
)

// DefaultChunkSize is used when BatchOptions.ChunkSize is not positive.
const DefaultChunkSize = 50

// Decision is returned by a batch progress callback to classify an item's
// counted outcome.
type Decision int

const (
	// Continue keeps the item's own outcome (succeeded or failed).
	Continue Decision = iota
	// Skip records the item as skipped instead of succeeded or failed.
	// Bulk workflows use it to exclude ineligible items from the counts.
	Skip
)

// BatchOptions configures a Batch run.
type BatchOptions[I any] struct {
	// ChunkSize bounds how many items are processed between progress log
	// lines. Not positive means DefaultChunkSize. The last chunk may be
	// shorter.
	ChunkSize int

	// Describe supplies the item identifier recorded in the result. Nil
	// falls back to the item's index.
	Describe func(item I) string

	// Progress, if set, is invoked after each item with the item, its index,
	// and the total count. Returning Skip records the item as skipped.
	Progress func(item I, index, total int) Decision

	// Halt opts into fail-fast: when op returns an error matching Halt
	// (via errors.Is), the run stops and the remaining items are recorded
	// as skipped. Nil keeps the default continue-on-error policy.
	Halt error
}

// Batch runs op over items in chunks, sequentially, isolating per-item
// failures: an item's error (or panic) is recorded in the result and the run
// continues. Batch itself opens no transaction: an op performing an atomic
// mutation per item yields N independent units of work, so a failure in item
// five never rolls back items one through four.
//
// There is no built-in cancellation or timeout; an op needing early
// termination returns an error matching BatchOptions.Halt.
func Batch[I any](ctx context.Context, p *Pipeline, items []I, opts BatchOptions[I], op func(ctx context.Context, item I, index int) error) *ports.BatchResult {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	total := len(items)
	result := &ports.BatchResult{
		Total: total,
		Items: make([]ports.BatchItem, 0, total),
	}

	for chunkStart := 0; chunkStart < total; chunkStart += chunkSize {
		chunkEnd := min(chunkStart+chunkSize, total)

		for i := chunkStart; i < chunkEnd; i++ {
			item := items[i]
			outcome := ports.BatchItem{Index: i, Key: describeItem(opts.Describe, item, i)}

			err := runItem(ctx, op, item, i)
			if err != nil {
				outcome.Status = ports.BatchFailed
				outcome.Error = err.Error()
			} else {
				outcome.Status = ports.BatchSucceeded
			}

			if opts.Progress != nil && opts.Progress(item, i, total) == Skip {
				outcome.Status = ports.BatchSkipped
				outcome.Error = ""
			}

			result.Items = append(result.Items, outcome)
			count(result, outcome.Status)
			p.countBatchItem(ctx, string(outcome.Status))

			if err != nil && opts.Halt != nil && errors.Is(err, opts.Halt) {
				p.logger.InfoContext(ctx, "batch halted",
					slog.String("operation", "Batch"),
					slog.Int("index", i),
					slog.Any("error", err),
				)
				skipRemaining(result, items, opts.Describe, i+1)
				return result
			}
		}

		p.logger.DebugContext(ctx, "batch chunk done",
			slog.String("operation", "Batch"),
			slog.Int("processed", chunkEnd),
			slog.Int("total", total),
		)
	}

	return result
}

// runItem invokes op for one item, converting a panic into an error so a
// panicking item cannot abort the batch.
func runItem[I any](ctx context.Context, op func(ctx context.Context, item I, index int) error, item I, index int) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return op(ctx, item, index)
}

// skipRemaining records every unprocessed item as skipped after a halt.
func skipRemaining[I any](result *ports.BatchResult, items []I, describe func(I) string, from int) {
	for i := from; i < len(items); i++ {
		result.Items = append(result.Items, ports.BatchItem{
			Index:  i,
			Key:    describeItem(describe, items[i], i),
			Status: ports.BatchSkipped,
			Error:  "not processed: batch halted",
		})
		result.Skipped++
	}
}

func describeItem[I any](describe func(I) string, item I, index int) string {
	if describe != nil {
		return describe(item)
	}
	return strconv.Itoa(index)
}

func count(result *ports.BatchResult, status ports.BatchItemStatus) {
	switch status {
	case ports.BatchSucceeded:
		result.Succeeded++
	case ports.BatchFailed:
		result.Failed++
	case ports.BatchSkipped:
		result.Skipped++
	}
}

func (p *Pipeline) countBatchItem(ctx context.Context, result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.CountBatchItem(ctx, result)
}
