// Package batch evaluates many calculator programs in parallel.
package batch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"numera/internal/cache"
	"numera/internal/calc"
	"numera/internal/trace"
)

// Status captures the progress state of one job.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached"
)

// Event reports progress for the job at Index.
type Event struct {
	Index  int
	Status Status
}

// Job is one program to evaluate.
type Job struct {
	Label   string // shown in progress output, e.g. "line 3"
	Program string
}

// Result is the outcome of one job. Results are returned in job order.
type Result struct {
	Index  int
	Label  string
	Lines  []string
	Err    error
	Cached bool
}

// Options configures Run.
type Options struct {
	Jobs        int // parallelism, 0 means GOMAXPROCS
	InputRadix  int
	OutputRadix int

	Cache  *cache.Cache // nil disables caching
	Events chan<- Event // optional; Run never closes it
	RunID  string       // recorded in cache entries; generated when empty
}

// Run evaluates every job in its own calc.Machine.
// A failing job is recorded in its Result and does not stop the others.
// The returned error is non-nil only when ctx is cancelled or a radix is invalid.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	if _, err := calc.NewMachine(opts.InputRadix, opts.OutputRadix); err != nil {
		return nil, err
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}
	for i := range jobs {
		emit(ctx, opts.Events, Event{Index: i, Status: StatusQueued})
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			span := trace.Begin(tracer, trace.ScopeBatch, "job:"+strconv.Itoa(i), parent)
			emit(gctx, opts.Events, Event{Index: i, Status: StatusRunning})
			res := runJob(trace.WithSpan(gctx, span), i, job, opts)
			results[i] = res

			status := StatusDone
			switch {
			case res.Cached:
				status = StatusCached
			case res.Err != nil:
				status = StatusError
			}
			span.WithExtra("lines", strconv.Itoa(len(res.Lines))).End(string(status))
			emit(gctx, opts.Events, Event{Index: i, Status: status})

			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func runJob(ctx context.Context, index int, job Job, opts Options) Result {
	res := Result{Index: index, Label: job.Label}
	key := cache.Key(job.Program, opts.InputRadix, opts.OutputRadix)

	var payload cache.Payload
	// A corrupt entry is treated as a miss and overwritten below.
	if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
		res.Lines = payload.Lines
		res.Cached = true
		if payload.Err != "" {
			res.Err = errors.New(payload.Err)
		}
		return res
	}

	m, err := calc.NewMachine(opts.InputRadix, opts.OutputRadix)
	if err != nil {
		res.Err = err
		return res
	}
	res.Lines, res.Err = m.Eval(ctx, job.Program)
	if ctx.Err() != nil {
		return res
	}

	entry := &cache.Payload{
		Program:     job.Program,
		InputRadix:  opts.InputRadix,
		OutputRadix: opts.OutputRadix,
		Lines:       res.Lines,
		RunID:       opts.RunID,
	}
	if res.Err != nil {
		entry.Err = res.Err.Error()
	}
	// Best-effort: a read-only cache directory must not fail the job.
	_ = opts.Cache.Put(key, entry) //nolint:errcheck
	return res
}

func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

// ReadJobs reads one program per line. Blank lines and lines starting with
// '#' are skipped; labels carry the 1-based line number.
func ReadJobs(r io.Reader) ([]Job, error) {
	var jobs []Job
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		jobs = append(jobs, Job{Label: fmt.Sprintf("line %d", line), Program: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}
	return jobs, nil
}

// Counts summarises results.
func Counts(results []Result) (ok, failed, cached int) {
	for _, r := range results {
		if r.Cached {
			cached++
		}
		if r.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed, cached
}
