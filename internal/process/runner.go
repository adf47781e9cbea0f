// Package process runs external tools as argv commands with inherited
// standard streams. No shell is involved.
package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is one external invocation.
type Command struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
	// Dir is resolved relative to the runner's working directory when not absolute.
	Dir string `yaml:"dir,omitempty"`
}

// String renders the command for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes commands synchronously and reports failure through the
// returned error only.
type Runner interface {
	Run(ctx context.Context, dir string, cmd Command) error
}

// ExecRunner is a concrete implementation of Runner using os/exec.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the command and waits for it. A non-zero exit surfaces as
// *exec.ExitError wrapped with the command line.
func (r ExecRunner) Run(ctx context.Context, dir string, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	return nil
}
