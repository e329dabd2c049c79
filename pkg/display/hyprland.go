package display

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
)

// ErrNoInstance indicates no Hyprland instance signature is set.
var ErrNoInstance = errors.New("HYPRLAND_INSTANCE_SIGNATURE not set, is Hyprland running?")

// DefaultRequestTimeout bounds a request without a context deadline.
const DefaultRequestTimeout = 2 * time.Second

// Hyprland implements Service over the Hyprland IPC socket.
type Hyprland struct {
	SocketPath string
	Timeout    time.Duration
}

// NewHyprland creates a Hyprland client on socketPath.
func NewHyprland(socketPath string) *Hyprland {
	return &Hyprland{SocketPath: socketPath, Timeout: DefaultRequestTimeout}
}

// SocketPath locates the request socket of the running instance.
func SocketPath() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", ErrNoInstance
	}
	var candidates []string
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "hypr", sig, ".socket.sock"))
	}
	candidates = append(candidates, filepath.Join("/tmp", "hypr", sig, ".socket.sock"))
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return candidates[0], nil
}

// Monitors implements Service.
func (h *Hyprland) Monitors(ctx context.Context) ([]Monitor, error) {
	data, err := h.Request(ctx, "j/monitors")
	if err != nil {
		return nil, err
	}
	var monitors []Monitor
	if err := json.Unmarshal(data, &monitors); err != nil {
		return nil, fmt.Errorf("decode monitors: %w", err)
	}
	return monitors, nil
}

// SetTransform implements Service.
func (h *Hyprland) SetTransform(ctx context.Context, name string, transform int) error {
	return h.Keyword(ctx, "monitor", fmt.Sprintf("%s,transform,%d", name, transform))
}

// SetGeometry implements Service.
func (h *Hyprland) SetGeometry(ctx context.Context, name string, g Geometry) error {
	return h.Keyword(ctx, "monitor", g.Rule(name))
}

// Keyword sets a config keyword at runtime.
func (h *Hyprland) Keyword(ctx context.Context, key, value string) error {
	data, err := h.Request(ctx, "keyword "+key+" "+value)
	if err != nil {
		return err
	}
	if reply := strings.TrimSpace(string(data)); reply != "ok" {
		return fmt.Errorf("keyword %s %s: %s", key, value, reply)
	}
	return nil
}

// Request sends a raw IPC request and returns the reply.
func (h *Hyprland) Request(ctx context.Context, req string) ([]byte, error) {
	if h.SocketPath == "" {
		return nil, ErrNoInstance
	}
	if _, ok := ctx.Deadline(); !ok {
		timeout := h.Timeout
		if timeout == 0 {
			timeout = DefaultRequestTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", h.SocketPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	glog.V(2).Infof("hyprctl %s", req)
	if _, err := conn.Write([]byte(req)); err != nil {
		return nil, err
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		uc.CloseWrite()
	}
	data, err := ioutil.ReadAll(conn)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("hyprctl %s: %d bytes", req, len(data))
	return data, nil
}
