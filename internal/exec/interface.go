// Package exec provides command execution for the automation harness.
package exec

import (
	"context"
)

// CommandRunner defines the interface for running external commands.
// This abstraction allows mocking framework invocations in tests.
type CommandRunner interface {
	// Run executes a command and returns combined stdout/stderr output.
	// The working directory is set to workDir if non-empty.
	Run(ctx context.Context, workDir string, name string, args ...string) (output []byte, err error)

	// RunShell executes a shell command through "sh -c".
	// This is a convenience method for running complex shell commands.
	RunShell(ctx context.Context, workDir string, command string) (output []byte, err error)
}
