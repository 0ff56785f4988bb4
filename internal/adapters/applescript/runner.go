// internal/adapters/applescript/runner.go
package applescript

import (
	"bytes"
	"context"
	"embed"
	"os/exec"
	"time"

	"contacts/internal/platform/errors"
	"contacts/internal/platform/logx"
)

//go:embed scripts/*.js
var scripts embed.FS

// Runner ejecuta un script con nombre y devuelve su stdout.
type Runner interface {
	Run(ctx context.Context, script string, args ...string) ([]byte, error)
}

// Source devuelve el código completo de un script: el preludio común
// seguido del script pedido.
func Source(script string) (string, error) {
	common, err := scripts.ReadFile("scripts/common.js")
	if err != nil {
		return "", errors.Wrap(err, "read common script")
	}
	body, err := scripts.ReadFile("scripts/" + script + ".js")
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "unknown script %q", script)
	}
	return string(common) + "\n" + string(body), nil
}

// Osascript corre los scripts JavaScript for Automation embebidos con el
// binario osascript.
type Osascript struct {
	path    string
	timeout time.Duration
	logger  logx.Logger
}

// NewOsascript crea el runner. path vacío usa /usr/bin/osascript y timeout
// cero usa 2 minutos.
func NewOsascript(path string, timeout time.Duration, logger logx.Logger) *Osascript {
	if path == "" {
		path = "/usr/bin/osascript"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = logx.NewSilent()
	}
	return &Osascript{path: path, timeout: timeout, logger: logger.With("component", "osascript")}
}

func (o *Osascript) Run(ctx context.Context, script string, args ...string) ([]byte, error) {
	src, err := Source(script)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, o.path, append([]string{"-l", "JavaScript", "-e", src}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrapf(errors.ErrTimeout, "script %s after %s", script, o.timeout)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			o.logger.Warn("script failed",
				"script", script,
				"exit_code", exitErr.ExitCode(),
				"duration", duration.String(),
			)
			return nil, &errors.ScriptError{Script: script, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, errors.Wrapf(err, "run script %s", script)
	}

	o.logger.Debug("script finished", "script", script, "args", len(args), "duration", duration.String())
	return stdout.Bytes(), nil
}
