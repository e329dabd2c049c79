// Package sh provides an interactive shell feeding commands into a
// ctl.Session.
package sh

import (
	"context"
	"errors"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/romner-set/arduino/pkg/ctl"
	fx "github.com/romner-set/arduino/pkg/framework"
)

const (
	shellKey   = "$shell"
	prompt     = "inoctl > "
	textPrompt = "inoctl text > "
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Shell   *ishell.Shell
	Session *ctl.Session

	ctx  context.Context
	err  error
	done bool
}

// New creates a new shell over an opened session.
func New(session *ctl.Session) *Shell {
	s := &Shell{Session: session, ctx: context.Background()}
	s.Shell = ishell.New()
	s.Shell.Set(shellKey, s)
	for _, cmd := range Cmds() {
		s.Shell.AddCmd(cmd)
	}
	s.Shell.NotFound(handle)
	s.updatePrompt()
	return s
}

// Cmds creates one command per control code and one for listen. All of
// them forward the whole input line to the session.
func Cmds() []*ishell.Cmd {
	var cmds []*ishell.Cmd
	for _, c := range ctl.Codes() {
		cmd := &ishell.Cmd{Name: c.Alias(), Help: c.Help(), Func: handle}
		if name := c.Name(); name != "" {
			cmd.Name, cmd.Aliases = name, []string{c.Alias()}
		}
		cmds = append(cmds, cmd)
	}
	return append(cmds, &ishell.Cmd{
		Name:    ctl.ListenToken,
		Aliases: []string{ctl.ListenToken[:1]},
		Help:    "react to the device until it sends EOT",
		Func:    handle,
	})
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

func handle(c *ishell.Context) {
	s := ShellFrom(c)
	words := c.Args
	if s.Session.Engine.TextMode() {
		words = c.RawArgs
	} else if c.Cmd.Name != "" && len(c.RawArgs) > 0 {
		// Args of a matched command exclude the command word itself.
		words = append([]string{c.RawArgs[0]}, c.Args...)
	}
	stop, err := s.Process(words)
	if err != nil {
		c.Err(err)
	}
	if stop {
		c.Stop()
	}
}

// Process feeds one input line. In text mode the whole line is a single
// payload, otherwise every word is a command. Processing of the line
// stops at the first unknown command, which is returned but does not
// stop the shell. stop is true when the session ended or failed.
func (s *Shell) Process(words []string) (stop bool, err error) {
	defer s.updatePrompt()
	if s.done {
		return true, s.err
	}
	if s.Session.Engine.TextMode() {
		words = []string{strings.Join(words, " ")}
	}
	for _, token := range words {
		if stop, err = s.exec(token); stop || err != nil {
			return
		}
	}
	return
}

func (s *Shell) exec(token string) (stop bool, err error) {
	code, ok := ctl.Resolve(token)
	eot := ok && code == ctl.EOT && !s.Session.Engine.TextMode()
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	done, err := s.Session.Exec(ctx, token)
	if err != nil {
		var unknown *ctl.UnknownCommandError
		if errors.As(err, &unknown) {
			return false, err
		}
		s.done, s.err = true, err
		return true, err
	}
	if done || eot {
		s.done = true
		return true, nil
	}
	return false, nil
}

// Err returns the error which ended the session.
func (s *Shell) Err() error {
	return s.err
}

func (s *Shell) updatePrompt() {
	if s.Shell == nil {
		return
	}
	if s.Session.Engine.TextMode() {
		s.Shell.SetPrompt(textPrompt)
	} else {
		s.Shell.SetPrompt(prompt)
	}
}

// Run implements fx.Runnable. It returns when the session ends, the
// input is closed or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.ctx = ctx
	return fx.RunWithContextCancel(ctx, s.Shell.Close, func() error {
		s.Shell.Run()
		return s.err
	})
}
