// cmd/servoctl/watch.go
package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-servo/internal/metrics"
	"github.com/tamzrod/modbus-servo/internal/monitor"
	"github.com/tamzrod/modbus-servo/internal/servo"
)

func NewWatchCommand(o *rootOptions) *cobra.Command {
	var (
		interval time.Duration
		listen   string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll status, alarms and encoder position until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			m := metrics.New(reg)
			var latest monitor.Latest

			if listen != "" {
				go func() {
					if err := metrics.Serve(ctx, listen, metrics.NewRouter(reg, latest.Load)); err != nil {
						o.logger.Error("metrics server stopped", "listen", listen, "err", err)
					}
				}()
			}

			return o.withController(m, func(c *servo.Controller) error {
				mon, err := monitor.New(monitor.Config{Interval: interval}, c)
				if err != nil {
					return err
				}

				out := make(chan monitor.Snapshot)
				runDone := make(chan struct{})
				go func() {
					mon.Run(ctx, out)
					close(runDone)
				}()

				for {
					select {
					case <-ctx.Done():
						// the controller must be idle before it is released
						<-runDone
						return nil
					case s := <-out:
						latest.Store(s)
						m.RecordSnapshot(s)
						printSnapshot(cmd.OutOrStdout(), s)
					}
				}
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Poll interval")
	cmd.Flags().StringVar(&listen, "listen", "", "Serve /metrics and /status on this address (e.g. :9100)")
	return cmd
}

func printSnapshot(w io.Writer, s monitor.Snapshot) {
	ts := s.At.Format("15:04:05.000")
	if s.Err != nil {
		fmt.Fprintf(w, "%s %s error: %v\n", ts, s.Servo, s.Err)
		return
	}
	fmt.Fprintf(w, "%s %s position=%d status=[%s] alarms=[%s]\n", ts, s.Servo, s.Position, s.Status, s.Alarms)
}
