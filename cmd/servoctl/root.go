// cmd/servoctl/root.go
package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-servo/internal/config"
	"github.com/tamzrod/modbus-servo/internal/servo"
)

const (
	ResourcesOptionName = "resources"
	DeviceOptionName    = "device"
	ServoOptionName     = "servo"
	LogLevelOptionName  = "log-level"
	LogFormatOptionName = "log-format"
	ReleaseOptionName   = "release"
)

type rootOptions struct {
	resources string
	device    string
	servo     string
	logLevel  string
	logFormat string
	release   bool

	logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "servoctl",
		Short:         "Command a Modbus servo drive",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			o.logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.resources, ResourcesOptionName, config.DefaultDir, "Directory holding <device>.yaml resource files")
	pf.StringVar(&o.device, DeviceOptionName, "", "Device resource name")
	pf.StringVar(&o.servo, ServoOptionName, "", "Servo name inside the device resource")
	pf.StringVar(&o.logLevel, LogLevelOptionName, "info", "Log level: debug, info, warn, error")
	pf.StringVar(&o.logFormat, LogFormatOptionName, "text", "Log format: text, json")
	pf.BoolVar(&o.release, ReleaseOptionName, true, "Issue the disconnect handshake before exiting")
	_ = cmd.MarkPersistentFlagRequired(DeviceOptionName)
	_ = cmd.MarkPersistentFlagRequired(ServoOptionName)

	cmd.AddCommand(
		NewStatusCommand(o),
		NewAlarmsCommand(o),
		NewEncoderCommand(o),
		NewDumpCommand(o),
		NewEnableCommand(o),
		NewDisableCommand(o),
		NewResetCommand(o),
		NewHomeCommand(o),
		NewInitCommand(o),
		NewMoveCommand(o),
		NewShutdownCommand(o),
		NewCycleCommand(o),
		NewWatchCommand(o),
		NewConsoleCommand(o),
	)
	return cmd
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", LogLevelOptionName, level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid %s %q: want text or json", LogFormatOptionName, format)
	}
}

func (o *rootOptions) connect(obs servo.Observer) (*servo.Controller, error) {
	return servo.Build(servo.BuildOptions{
		Dir:      o.resources,
		Device:   o.device,
		Servo:    o.servo,
		Logger:   o.logger,
		Observer: obs,
	})
}

// withController runs fn on a fresh controller, then releases and closes it.
func (o *rootOptions) withController(obs servo.Observer, fn func(c *servo.Controller) error) error {
	c, err := o.connect(obs)
	if err != nil {
		return err
	}
	defer c.Close()

	runErr := fn(c)

	if o.release {
		if err := c.Shutdown(); err != nil {
			o.logger.Error("disconnect handshake failed", "servo", c.Name(), "err", err)
			if runErr == nil {
				runErr = err
			}
		}
	}
	return runErr
}
