package main

import (
	"fmt"
	"io"
	"slices"
	"time"
)

// report is the end-of-run summary
type report struct {
	elapsed   time.Duration
	published int64
	consumed  int64
	returned  int64
	failures  int64
	latency   latencySummary
}

type latencySummary struct {
	samples int
	min     time.Duration
	p50     time.Duration
	p75     time.Duration
	p95     time.Duration
	p99     time.Duration
	max     time.Duration
}

func newReport(s *runStats, elapsed time.Duration) report {
	s.mu.Lock()
	sorted := slices.Clone(s.latencies)
	s.mu.Unlock()
	slices.Sort(sorted)

	return report{
		elapsed:   elapsed,
		published: s.published.Load(),
		consumed:  s.consumed.Load(),
		returned:  s.returned.Load(),
		failures:  s.failures.Load(),
		latency:   summarize(sorted),
	}
}

// summarize expects sorted samples
func summarize(sorted []time.Duration) latencySummary {
	if len(sorted) == 0 {
		return latencySummary{}
	}
	return latencySummary{
		samples: len(sorted),
		min:     sorted[0],
		p50:     percentile(sorted, 50),
		p75:     percentile(sorted, 75),
		p95:     percentile(sorted, 95),
		p99:     percentile(sorted, 99),
		max:     sorted[len(sorted)-1],
	}
}

// percentile uses the nearest-rank method
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func (r report) rate(n int64) float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(n) / r.elapsed.Seconds()
}

func (r report) print(w io.Writer) {
	fmt.Fprintf(w, "\nran for %s\n", r.elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  published %10d  (%.0f msg/s)\n", r.published, r.rate(r.published))
	fmt.Fprintf(w, "  consumed  %10d  (%.0f msg/s)\n", r.consumed, r.rate(r.consumed))
	fmt.Fprintf(w, "  returned  %10d\n", r.returned)
	fmt.Fprintf(w, "  failures  %10d\n", r.failures)

	l := r.latency
	if l.samples == 0 {
		fmt.Fprintln(w, "no latency samples")
		return
	}
	fmt.Fprintf(w, "latency over %d deliveries\n", l.samples)
	fmt.Fprintf(w, "  min %v  p50 %v  p75 %v  p95 %v  p99 %v  max %v\n",
		l.min, l.p50, l.p75, l.p95, l.p99, l.max)
}
