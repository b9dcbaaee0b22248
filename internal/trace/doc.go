// Package trace records what numera is doing while it evaluates programs.
//
// Events are grouped into spans. A span opens when a CLI command, a batch job
// or a single calculator operation starts, and closes when it ends.
//
// # Usage
//
//	numera calc --trace=- --trace-level=detail "2 100 ^ p"
//
// # Tracers
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes each event to a file or stderr
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring dump on failure only
//   - LevelPhase: command boundaries
//   - LevelDetail: plus batch jobs
//   - LevelDebug: plus every calculator operation
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeBatch, "job:3", parentID)
//	defer span.End("")
package trace
