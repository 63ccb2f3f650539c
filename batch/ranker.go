// Package batch applies the per-item pipeline across a fetched feed page and
// folds the verdicts into a risk-ranked summary.
package batch

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"feedwatch/contract"
	"feedwatch/domain"
)

// Ranker drives a bounded worker pool over a batch. Items are independent;
// the only shared state is the analyzer's rule corpus and rate budget, so
// workers never coordinate beyond the job channel.
type Ranker struct {
	analyzer contract.ItemAnalyzer
	workers  int
	log      *slog.Logger
}

func NewRanker(analyzer contract.ItemAnalyzer, workers int, log *slog.Logger) *Ranker {
	if workers < 1 {
		workers = 1
	}
	return &Ranker{analyzer: analyzer, workers: workers, log: log}
}

type job struct {
	idx  int
	item domain.ContentItem
}

// Rank analyzes every item concurrently and produces the batch summary.
// Cancelling ctx stops dispatching new items; in-flight items complete and
// their verdicts still count. The summary reflects only items actually
// analyzed, so partial batches report accurate percentages.
func (r *Ranker) Rank(ctx context.Context, items []domain.ContentItem) domain.BatchSummary {
	verdicts := make([]*domain.Verdict, len(items))

	jobs := make(chan job)
	wg := &sync.WaitGroup{}
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				v := r.analyzer.Analyze(ctx, j.item, nil)
				verdicts[j.idx] = &v
			}
		}()
	}

dispatch:
	for i, item := range items {
		select {
		case <-ctx.Done():
			r.log.Warn("Batch cancelled", "dispatched", i, "total", len(items))
			break dispatch
		case jobs <- job{idx: i, item: item}:
		}
	}
	close(jobs)
	wg.Wait()

	return summarize(items, verdicts)
}

// summarize builds the risk-sorted ordering and label statistics. The sort is
// stable on the original feed order, so equal scores never re-shuffle between
// runs.
func summarize(items []domain.ContentItem, verdicts []*domain.Verdict) domain.BatchSummary {
	summary := domain.BatchSummary{
		Counts:      map[domain.Label]int{},
		Percentages: map[domain.Label]float64{},
	}

	for i, v := range verdicts {
		if v == nil {
			continue
		}
		summary.Total++
		summary.Counts[v.Label]++
		if v.PartiallyAnalyzed() {
			summary.PartiallyAnalyzed++
		}
		summary.Ranked = append(summary.Ranked, domain.RankedItem{Item: items[i], Verdict: *v})
	}

	sort.SliceStable(summary.Ranked, func(a, b int) bool {
		return summary.Ranked[a].Verdict.Score > summary.Ranked[b].Verdict.Score
	})

	if summary.Total > 0 {
		for _, label := range []domain.Label{domain.Safe, domain.Suspicious, domain.Flagged} {
			pct := float64(summary.Counts[label]) / float64(summary.Total) * 100
			summary.Percentages[label] = math.Round(pct*100) / 100
		}
	}
	return summary
}
