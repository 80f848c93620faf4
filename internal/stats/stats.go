// Package stats aggregates raw request logs into operational statistics:
// hourly and daily time series, a model leaderboard and a summary.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"grok-gateway/internal/storage"
)

const (
	hourlyBuckets   = 24
	dailyBuckets    = 14
	leaderboardDays = 7
	topModels       = 8
)

// LogStore is the subset of storage the aggregator reads.
type LogStore interface {
	RequestLogsSince(ctx context.Context, sinceMs int64) ([]*storage.LogSample, error)
	ModelCountsSince(ctx context.Context, sinceMs int64, limit int) ([]*storage.ModelCount, error)
}

// HourlyBucket is one slot of the trailing-24h series.
type HourlyBucket struct {
	Hour    string `json:"hour"` // "HH:00", UTC hour of day
	Success int    `json:"success"`
	Failed  int    `json:"failed"`
}

// DailyBucket is one slot of the trailing-14d series.
type DailyBucket struct {
	Date    string `json:"date"` // "YYYY-MM-DD", UTC calendar date
	Success int    `json:"success"`
	Failed  int    `json:"failed"`
}

// Summary totals the trailing-24h window.
type Summary struct {
	Total       int     `json:"total"`
	Success     int     `json:"success"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"success_rate"` // percent, one decimal place
}

// Report is the full aggregation result.
type Report struct {
	Hourly  []HourlyBucket        `json:"hourly"`
	Daily   []DailyBucket         `json:"daily"`
	Models  []*storage.ModelCount `json:"models"`
	Summary Summary               `json:"summary"`
}

// Aggregator derives reports from the request log table.
type Aggregator struct {
	store LogStore
}

// NewAggregator creates an Aggregator.
func NewAggregator(store LogStore) *Aggregator {
	return &Aggregator{store: store}
}

// isSuccess reports whether an HTTP status counts as a successful call.
func isSuccess(status int) bool {
	return status >= 200 && status < 400
}

// hourKey buckets a timestamp by its UTC calendar hour.
func hourKey(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15")
}

// dayKey buckets a timestamp by its UTC calendar date.
func dayKey(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

// Report aggregates the log table relative to now. All window boundaries
// slide with now, so repeated calls over time produce moving windows; empty
// periods are represented with zero-filled buckets.
func (a *Aggregator) Report(ctx context.Context, now time.Time) (*Report, error) {
	nowMs := now.UnixMilli()

	hourly, summary, err := a.hourlySeries(ctx, nowMs)
	if err != nil {
		return nil, err
	}

	daily, err := a.dailySeries(ctx, nowMs)
	if err != nil {
		return nil, err
	}

	since7d := nowMs - int64(leaderboardDays)*24*int64(time.Hour/time.Millisecond)
	models, err := a.store.ModelCountsSince(ctx, since7d, topModels)
	if err != nil {
		return nil, err
	}

	return &Report{
		Hourly:  hourly,
		Daily:   daily,
		Models:  models,
		Summary: summary,
	}, nil
}

type tally struct {
	success int
	failed  int
}

func (a *Aggregator) hourlySeries(ctx context.Context, nowMs int64) ([]HourlyBucket, Summary, error) {
	const hourMs = int64(time.Hour / time.Millisecond)

	samples, err := a.store.RequestLogsSince(ctx, nowMs-hourlyBuckets*hourMs)
	if err != nil {
		return nil, Summary{}, err
	}

	byHour := make(map[string]*tally)
	var success, failed int
	for _, s := range samples {
		key := hourKey(s.Timestamp)
		t := byHour[key]
		if t == nil {
			t = &tally{}
			byHour[key] = t
		}
		if isSuccess(s.Status) {
			t.success++
			success++
		} else {
			t.failed++
			failed++
		}
	}

	// Generate every slot from the base timestamp so empty hours still appear
	buckets := make([]HourlyBucket, 0, hourlyBuckets)
	start := nowMs - (hourlyBuckets-1)*hourMs
	for i := 0; i < hourlyBuckets; i++ {
		ts := start + int64(i)*hourMs
		label := fmt.Sprintf("%02d:00", time.UnixMilli(ts).UTC().Hour())
		b := HourlyBucket{Hour: label}
		if t := byHour[hourKey(ts)]; t != nil {
			b.Success = t.success
			b.Failed = t.failed
		}
		buckets = append(buckets, b)
	}

	total := success + failed
	var rate float64
	if total > 0 {
		rate = math.Round(float64(success)/float64(total)*1000) / 10
	}

	return buckets, Summary{
		Total:       total,
		Success:     success,
		Failed:      failed,
		SuccessRate: rate,
	}, nil
}

func (a *Aggregator) dailySeries(ctx context.Context, nowMs int64) ([]DailyBucket, error) {
	const dayMs = 24 * int64(time.Hour/time.Millisecond)

	samples, err := a.store.RequestLogsSince(ctx, nowMs-dailyBuckets*dayMs)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*tally)
	for _, s := range samples {
		key := dayKey(s.Timestamp)
		t := byDay[key]
		if t == nil {
			t = &tally{}
			byDay[key] = t
		}
		if isSuccess(s.Status) {
			t.success++
		} else {
			t.failed++
		}
	}

	buckets := make([]DailyBucket, 0, dailyBuckets)
	start := nowMs - (dailyBuckets-1)*dayMs
	for i := 0; i < dailyBuckets; i++ {
		ts := start + int64(i)*dayMs
		key := dayKey(ts)
		b := DailyBucket{Date: key}
		if t := byDay[key]; t != nil {
			b.Success = t.success
			b.Failed = t.failed
		}
		buckets = append(buckets, b)
	}

	return buckets, nil
}
