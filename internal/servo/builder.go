// internal/servo/builder.go
package servo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tamzrod/modbus-servo/internal/config"
	"github.com/tamzrod/modbus-servo/internal/transport"
	tmodbus "github.com/tamzrod/modbus-servo/internal/transport/modbus"
)

// DialFunc opens a transport. tmodbus.Open is used when nil.
type DialFunc func(tmodbus.Config) (transport.Transport, error)

// BuildOptions names the device resource and servo to bind.
type BuildOptions struct {
	Dir    string // resource directory; config.DefaultDir when empty
	Device string // resource file name without extension
	Servo  string // entry under device: in the resource file

	Logger   *slog.Logger
	Observer Observer
	Clock    Clock
	Dial     DialFunc
}

// Build resolves the servo address from its resource file, connects
// and returns a Controller owning the connection.
// Configuration and connection failures produce no controller.
func Build(o BuildOptions) (*Controller, error) {
	if o.Device == "" {
		return nil, errors.New("servo: device name required")
	}
	if o.Servo == "" {
		return nil, errors.New("servo: servo name required")
	}

	log := o.Logger
	if log == nil {
		log = slog.Default()
	}
	dial := o.Dial
	if dial == nil {
		dial = tmodbus.Open
	}

	path := config.Path(o.Dir, o.Device)
	log.Info("creating servo controller", "servo", o.Servo, "config", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed (%s): %w", path, err)
	}
	config.Normalize(cfg)

	addr, fallback := cfg.Resolve(o.Servo)
	if fallback {
		log.Warn("no address configured, using default", "servo", o.Servo, "address", addr)
	}

	log.Info("connecting to device", "servo", o.Servo, "address", addr)
	tr, err := dial(tmodbus.Config{
		Address:  addr,
		UnitID:   cfg.Transport.UnitID,
		Timeout:  time.Duration(cfg.Transport.TimeoutMs) * time.Millisecond,
		BaudRate: cfg.Transport.BaudRate,
		DataBits: cfg.Transport.DataBits,
		Parity:   cfg.Transport.Parity,
		StopBits: cfg.Transport.StopBits,
	})
	if err != nil {
		return nil, fmt.Errorf("servo: unable to connect to %s: %w", addr, err)
	}

	dev := Device{
		Name:       o.Servo,
		Address:    addr,
		ConfigPath: path,
	}

	return New(dev, tr,
		WithTiming(TimingFromConfig(cfg.Timing)),
		WithLogger(log),
		WithObserver(o.Observer),
		WithClock(o.Clock),
	), nil
}
