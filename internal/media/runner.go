package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command describes one external tool invocation
type Command struct {
	Name string
	Args []string
	// OnStderrLine, when set, receives every stderr line while the process runs
	OnStderrLine func(line string)
}

// Runner executes external commands and returns their stdout
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// maxErrorOutput bounds how much stderr is attached to an error
const maxErrorOutput = 400

// Run implements Runner
func (ExecRunner) Run(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if c.OnStderrLine == nil {
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return stdout.Bytes(), commandError(c.Name, err, stderr.String())
		}
		return stdout.Bytes(), nil
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", c.Name, err)
	}

	var tail strings.Builder
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		c.OnStderrLine(line)
		if tail.Len() < maxErrorOutput*4 {
			tail.WriteString(line)
			tail.WriteByte('\n')
		}
	}

	if err := cmd.Wait(); err != nil {
		return stdout.Bytes(), commandError(c.Name, err, tail.String())
	}
	return stdout.Bytes(), nil
}

func commandError(name string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if len(stderr) > maxErrorOutput {
		stderr = stderr[len(stderr)-maxErrorOutput:]
	}
	if stderr == "" {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return fmt.Errorf("%s failed: %w: %s", name, err, stderr)
}
