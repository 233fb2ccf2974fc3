package backend

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Process invokes the Ollama CLI as a subprocess: `ollama run <model> <prompt>`
// with decoding options passed as -o flags. Stdout is the model output.
type Process struct {
	execPath string
	model    string
	opts     Options
	timeout  time.Duration
}

// NewProcess creates a process backend. The executable is resolved on PATH
// once at construction; if it is not installed the backend reports
// unavailable on every Invoke rather than failing construction, so a
// misconfigured host still degrades to the lexicon.
func NewProcess(executable, model string, opts Options, timeout time.Duration) *Process {
	if executable == "" {
		executable = "ollama"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		path = ""
	}
	return &Process{execPath: path, model: model, opts: opts, timeout: timeout}
}

// Available reports whether the executable was found on PATH.
func (p *Process) Available() bool { return p.execPath != "" }

// Invoke implements Backend.
func (p *Process) Invoke(ctx context.Context, prompt string) (string, error) {
	if p.execPath == "" {
		return "", fmt.Errorf("%w: ollama executable not found on PATH", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{"run", p.model}
	if p.opts.Temperature != nil {
		args = append(args, "-o", fmt.Sprintf("temperature=%g", *p.opts.Temperature))
	}
	if p.opts.TopP != nil {
		args = append(args, "-o", fmt.Sprintf("top_p=%g", *p.opts.TopP))
	}
	args = append(args, prompt)

	out, err := exec.CommandContext(ctx, p.execPath, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, p.execPath, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("%w: empty model output", ErrUnavailable)
	}
	return text, nil
}
