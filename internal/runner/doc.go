// Package runner drives the countdown reducer in real time.
//
// A Runner keeps one countdown per device and kind, ticks running countdowns
// from a clock, and publishes every state change as an event. Selection
// helpers resolve timer tabs, stored timers and meditation sessions into a
// duration before handing it to the runner.
package runner
