package display

import (
	"context"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeHyprland struct {
	t        *testing.T
	listener net.Listener
	replies  map[string]string
	requests []string
	lock     sync.Mutex
}

func newFakeHyprland(t *testing.T, replies map[string]string) (*fakeHyprland, func()) {
	dir, err := ioutil.TempDir("", "hypr")
	require.NoError(t, err)
	l, err := net.Listen("unix", filepath.Join(dir, ".socket.sock"))
	require.NoError(t, err)
	f := &fakeHyprland{t: t, listener: l, replies: replies}
	go f.serve()
	return f, func() {
		l.Close()
		os.RemoveAll(dir)
	}
}

func (f *fakeHyprland) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		req, _ := ioutil.ReadAll(conn)
		f.lock.Lock()
		f.requests = append(f.requests, string(req))
		reply, ok := f.replies[string(req)]
		f.lock.Unlock()
		if !ok {
			reply = "unknown request"
		}
		conn.Write([]byte(reply))
		conn.Close()
	}
}

func (f *fakeHyprland) Requests() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.requests...)
}

const monitorsJSON = `[
	{"id": 0, "name": "DP-1", "width": 1920, "height": 1080, "refreshRate": 143.98, "x": 1920, "y": 0, "scale": 1.0, "transform": 0, "focused": true},
	{"id": 1, "name": "HDMI-A-1", "width": 1920, "height": 1080, "refreshRate": 60.0, "x": 0, "y": 0, "scale": 1.0, "transform": 3, "focused": false}
]`

func TestHyprlandMonitors(t *testing.T) {
	f, done := newFakeHyprland(t, map[string]string{"j/monitors": monitorsJSON})
	defer done()

	h := NewHyprland(f.listener.Addr().String())
	monitors, err := h.Monitors(context.Background())
	require.NoError(t, err)
	require.Len(t, monitors, 2)

	m, ok := Find(monitors, "HDMI-A-1")
	require.True(t, ok)
	require.Equal(t, 3, m.Transform)
	require.Equal(t, 1, m.ID)

	_, ok = Find(monitors, "DP-2")
	require.False(t, ok)
}

func TestHyprlandMonitorsBadReply(t *testing.T) {
	f, done := newFakeHyprland(t, map[string]string{"j/monitors": "not json"})
	defer done()

	_, err := NewHyprland(f.listener.Addr().String()).Monitors(context.Background())
	require.Error(t, err)
}

func TestHyprlandKeywords(t *testing.T) {
	f, done := newFakeHyprland(t, map[string]string{
		"keyword monitor HDMI-A-1,transform,1":          "ok",
		"keyword monitor DP-1,1920x1080@144,1080x400,1": "ok",
	})
	defer done()

	h := NewHyprland(f.listener.Addr().String())
	ctx := context.Background()
	require.NoError(t, h.SetTransform(ctx, "HDMI-A-1", 1))
	require.NoError(t, h.SetGeometry(ctx, "DP-1", Geometry{Mode: "1920x1080@144", Position: "1080x400", Scale: "1"}))
	require.Error(t, h.SetTransform(ctx, "HDMI-A-2", 1))
	require.Equal(t, []string{
		"keyword monitor HDMI-A-1,transform,1",
		"keyword monitor DP-1,1920x1080@144,1080x400,1",
		"keyword monitor HDMI-A-2,transform,1",
	}, f.Requests())
}

func TestHyprlandNoInstance(t *testing.T) {
	_, err := NewHyprland("").Monitors(context.Background())
	require.Equal(t, ErrNoInstance, err)
}

func TestSocketPath(t *testing.T) {
	sig, runtimeDir := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE"), os.Getenv("XDG_RUNTIME_DIR")
	defer func() {
		os.Setenv("HYPRLAND_INSTANCE_SIGNATURE", sig)
		os.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	}()

	os.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	_, err := SocketPath()
	require.Equal(t, ErrNoInstance, err)

	os.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc")
	os.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	path, err := SocketPath()
	require.NoError(t, err)
	require.Contains(t, []string{
		"/run/user/1000/hypr/abc/.socket.sock",
		"/tmp/hypr/abc/.socket.sock",
	}, path)
}
