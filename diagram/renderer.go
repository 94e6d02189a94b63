package diagram

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultRenderCommand is the mermaid-cli binary.
const DefaultRenderCommand = "mmdc"

// CommandRenderer renders through an external mermaid-cli compatible
// command invoked as `<cmd> -i in.mmd -o out.svg [args...]`.
type CommandRenderer struct {
	Command string
	Args    []string
}

func (r CommandRenderer) Render(ctx context.Context, id, source string) (string, error) {
	name := r.Command
	if name == "" {
		name = DefaultRenderCommand
	}

	dir, err := os.MkdirTemp("", id+"-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "diagram.mmd")
	out := filepath.Join(dir, "diagram.svg")
	if err := os.WriteFile(in, []byte(source), 0o600); err != nil {
		return "", err
	}

	args := append([]string{"-i", in, "-o", out}, r.Args...)
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		return "", err
	}
	return string(svg), nil
}
