// cmd/servoctl/cycle.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-servo/internal/metrics"
	"github.com/tamzrod/modbus-servo/internal/servo"
)

type cycleOptions struct {
	move   servo.MoveParams
	from   uint32
	to     uint32
	count  int
	home   bool
	listen string
}

func NewCycleCommand(o *rootOptions) *cobra.Command {
	co := &cycleOptions{}
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Move back and forth between two positions",
		Long: "Homes the servo (unless --home=false), then alternates moves to --to and --from\n" +
			"until --count moves were issued or the process is interrupted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if co.count <= 0 {
				return fmt.Errorf("--count must be > 0, got %d", co.count)
			}
			if co.from == co.to {
				return errors.New("--from and --to must differ")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			m := metrics.New(reg)
			if co.listen != "" {
				go func() {
					if err := metrics.Serve(ctx, co.listen, metrics.NewRouter(reg, nil)); err != nil {
						o.logger.Error("metrics server stopped", "listen", co.listen, "err", err)
					}
				}()
			}

			return o.withController(m, func(c *servo.Controller) error {
				done, err := runCycles(ctx, o.logger, c, co)
				fmt.Fprintf(cmd.OutOrStdout(), "Moves issued: %d, cycles completed: %d\n", done, c.CycleCount())
				return err
			})
		},
	}

	addMoveFlags(cmd, &co.move)
	cmd.Flags().Uint32Var(&co.from, "from", 0, "First position")
	cmd.Flags().Uint32Var(&co.to, "to", 0, "Second position")
	cmd.Flags().IntVar(&co.count, "count", 10, "Number of moves")
	cmd.Flags().BoolVar(&co.home, "home", true, "Home before cycling")
	cmd.Flags().StringVar(&co.listen, "listen", "", "Serve /metrics on this address (e.g. :9100)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// mover is the part of the controller a cycle run needs.
type mover interface {
	HomeServo() error
	MoveServo(servo.MoveParams) error
	Name() string
}

// runCycles returns the number of moves issued.
// Moves ending out of tolerance or past their deadline are logged and the run
// continues; any other error stops it.
func runCycles(ctx context.Context, log *slog.Logger, c mover, co *cycleOptions) (int, error) {
	if co.home {
		if err := c.HomeServo(); err != nil {
			return 0, fmt.Errorf("homing before cycling: %w", err)
		}
	}

	for i := 0; i < co.count; i++ {
		if err := ctx.Err(); err != nil {
			return i, nil
		}

		p := co.move
		p.Target = co.to
		if i%2 == 1 {
			p.Target = co.from
		}

		err := c.MoveServo(p)
		switch servo.Outcome(err) {
		case "ok":
		case "timeout", "out_of_tolerance":
			log.Warn("move did not complete", "servo", c.Name(), "move", i+1, "err", err)
		default:
			return i + 1, err
		}
	}
	return co.count, nil
}
