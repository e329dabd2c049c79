package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/golang/glog"

	"github.com/romner-set/arduino/pkg/cli/sh"
	"github.com/romner-set/arduino/pkg/ctl"
	"github.com/romner-set/arduino/pkg/display"
	"github.com/romner-set/arduino/pkg/framework"
	"github.com/romner-set/arduino/pkg/layout"
	"github.com/romner-set/arduino/pkg/notify/mqtt"
	"github.com/romner-set/arduino/pkg/serial"
)

var interactive bool

func init() {
	ctl.SetupFlags()
	serial.SetupFlags()
	display.SetupFlags()
	layout.SetupFlags()
	mqtt.SetupFlags()
	flag.BoolVar(&interactive, "shell", interactive, "Start an interactive shell after the commands.")
	flag.Set("logtostderr", "true")
	flag.Usage = usage
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] [COMMAND...]\n\nCommands:\n", os.Args[0])
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, c := range ctl.Codes() {
		fmt.Fprintf(w, "  %s\t%s\t0x%02x\t%s\n", c.Name(), c.Alias(), byte(c), c.Help())
	}
	fmt.Fprintf(w, "  %s\t%s\t\t%s\n", ctl.ListenToken, ctl.ListenToken[:1]+"*", "react to the device until it sends EOT")
	w.Flush()
	fmt.Fprintln(out, "\nBetween text-start and text-end every command is sent as raw text.\n\nFlags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := ctl.NewConfig()
	if err := conf.Validate(); err != nil {
		glog.Exitf("invalid configuration: %v", err)
	}
	port, err := serial.Open(serial.NewConfig())
	if err != nil {
		glog.Exitf("%v", err)
	}

	session := ctl.NewSession(conf, port,
		display.NewConfig().NewService(),
		layout.NewConfig().NewService())
	session.Commands = flag.Args()

	runner := framework.NewRunner().HandleSignals()

	var pub *mqtt.Publisher
	if mqttConf := mqtt.NewConfig(); mqttConf.Enabled() {
		if pub, err = mqttConf.NewPublisher(); err != nil {
			glog.Exitf("mqtt: %v", err)
		}
		if err = pub.Connect(runner.Context); err != nil {
			glog.Warningf("mqtt: %v, events disabled", err)
			pub = nil
		} else {
			session.Dispatcher.Notifier = pub
		}
	}

	runErr := runner.Go(framework.NamedRun("session", framework.RunnableFunc(func(ctx context.Context) error {
		return framework.RunWithContextCloser(ctx, port, func() error {
			if err := session.Run(ctx); err != nil {
				return err
			}
			// The session is over once listening ended.
			if !interactive || session.State() == ctl.StateListening {
				return nil
			}
			return sh.New(session).Run(ctx)
		})
	}))).Wait()

	var errs framework.AggregatedError
	if pub != nil {
		errs.Add(pub.Close())
	}
	if err := errs.Aggregate(); err != nil {
		glog.Warningf("shutdown: %v", err)
	}
	var interrupted *framework.InterruptedError
	if errors.As(runErr, &interrupted) {
		glog.Warningf("%v", interrupted)
		glog.Flush()
		os.Exit(interrupted.ExitCode())
	}
	if runErr != nil {
		glog.Exitf("%v", runErr)
	}
}
