package render

import (
	"context"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// Renderer turns a master exhibit index into PDF exhibits. Rendering is
// delegated to an external tool; casebinder never produces PDFs itself.
type Renderer interface {
	Render(ctx context.Context, indexPath string) error
}

// ExecRenderer invokes the configured external exhibit generator with the
// index path.
type ExecRenderer struct {
	command string
	logger  *zap.Logger
}

// NewExecRenderer creates a renderer shelling out to command
func NewExecRenderer(command string, logger *zap.Logger) *ExecRenderer {
	return &ExecRenderer{command: command, logger: logger}
}

// Render runs the external generator against the given index file
func (r *ExecRenderer) Render(ctx context.Context, indexPath string) error {
	if _, err := exec.LookPath(r.command); err != nil {
		return fmt.Errorf("exhibit renderer %q not found: %w", r.command, err)
	}

	cmd := exec.CommandContext(ctx, r.command, "--index", indexPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("exhibit renderer failed: %w: %s", err, out)
	}

	r.logger.Info("exhibit renderer finished",
		zap.String("command", r.command),
		zap.String("index", indexPath))
	return nil
}
