// Package process stops external converter subprocesses together with their
// children when a conversion is cancelled.
package process
