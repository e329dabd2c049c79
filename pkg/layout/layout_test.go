package layout

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKittyArgs(t *testing.T) {
	k := NewConfig().NewService()
	require.Equal(t, []string{"@", "--to", "tcp:localhost:65065", "goto-layout", "-m", "all", "grid"}, k.Args(Grid))

	k = &Kitty{Binary: "kitty"}
	require.Equal(t, []string{"@", "goto-layout", "vertical"}, k.Args(Vertical))
}

func TestKittyGotoLayout(t *testing.T) {
	for _, bin := range []string{"true", "false"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available", bin)
		}
	}

	k := &Kitty{Binary: "true", To: "tcp:localhost:1", Match: "all"}
	require.NoError(t, k.GotoLayout(context.Background(), Grid))

	k.Binary = "false"
	err := k.GotoLayout(context.Background(), Vertical)
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))

	k.Binary = "/nonexistent/kitty"
	require.Error(t, k.GotoLayout(context.Background(), Grid))
}
