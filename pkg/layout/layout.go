// Package layout switches terminal window layouts.
package layout

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/golang/glog"
)

// Well-known layout names.
const (
	Grid     = "grid"
	Vertical = "vertical"
)

// Service changes the layout of terminal windows.
type Service interface {
	GotoLayout(ctx context.Context, name string) error
}

// Kitty implements Service using kitty remote control.
type Kitty struct {
	// Binary is the kitty executable.
	Binary string
	// To is the remote control address, e.g. tcp:localhost:65065.
	To string
	// Match selects the tabs to change, e.g. all.
	Match string
}

// Args builds the kitty command line for the layout.
func (k *Kitty) Args(name string) []string {
	args := []string{"@"}
	if k.To != "" {
		args = append(args, "--to", k.To)
	}
	args = append(args, "goto-layout")
	if k.Match != "" {
		args = append(args, "-m", k.Match)
	}
	return append(args, name)
}

// GotoLayout implements Service.
func (k *Kitty) GotoLayout(ctx context.Context, name string) error {
	args := k.Args(name)
	glog.V(2).Infof("exec %s %s", k.Binary, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, k.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s goto-layout %s: %w: %s", k.Binary, name, err, msg)
		}
		return fmt.Errorf("%s goto-layout %s: %w", k.Binary, name, err)
	}
	return nil
}
