// Package model defines the result types shared by the benchmark driver and
// its sinks.
//
// # Result Types
//
//   - Trial: one timed (algorithm, dataset copy) pairing
//   - TimingResult: the four trial durations measured for one input size
//
// Durations are kept as time.Duration; sinks convert them with Milliseconds.
package model
