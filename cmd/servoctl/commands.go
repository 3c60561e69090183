// cmd/servoctl/commands.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-servo/internal/servo"
)

func NewStatusCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print active status flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withController(nil, func(c *servo.Controller) error {
				st, err := c.ReadStatus()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Status: %s\n", st)
				return nil
			})
		},
	}
}

func NewAlarmsCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "alarms",
		Short: "Print active alarm flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withController(nil, func(c *servo.Controller) error {
				alarms, err := c.ReadAlarms()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Alarms: %s\n", alarms)
				return nil
			})
		},
	}
}

func NewEncoderCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encoder",
		Short: "Print the encoder position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withController(nil, func(c *servo.Controller) error {
				p, err := c.EncoderCount()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Encoder: %d\n", p)
				return nil
			})
		},
	}
}

func NewDumpCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print registers 0-56",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withController(nil, func(c *servo.Controller) error {
				regs, err := c.DumpRegisters()
				if err != nil {
					return err
				}
				for n, v := range regs {
					fmt.Fprintf(cmd.OutOrStdout(), "Register %d: %d\n", n, v)
				}
				return nil
			})
		},
	}
}

// newActionCommand builds a subcommand that runs one controller operation.
func newActionCommand(o *rootOptions, use, short string, action func(c *servo.Controller) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withController(nil, action)
		},
	}
}

func NewEnableCommand(o *rootOptions) *cobra.Command {
	return newActionCommand(o, "enable", "Enable the motor", (*servo.Controller).EnableMotor)
}

func NewDisableCommand(o *rootOptions) *cobra.Command {
	return newActionCommand(o, "disable", "Disable the motor", (*servo.Controller).DisableMotor)
}

func NewResetCommand(o *rootOptions) *cobra.Command {
	return newActionCommand(o, "reset", "Reset alarm or fault and enable the motor", (*servo.Controller).ResetAlarmOrFault)
}

func NewHomeCommand(o *rootOptions) *cobra.Command {
	return newActionCommand(o, "home", "Home the servo and wait for completion", (*servo.Controller).HomeServo)
}

func NewInitCommand(o *rootOptions) *cobra.Command {
	return newActionCommand(o, "init", "Start homing without waiting (first bring-up)", (*servo.Controller).Initialize)
}

func NewMoveCommand(o *rootOptions) *cobra.Command {
	var p servo.MoveParams
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move to an absolute encoder position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withController(nil, func(c *servo.Controller) error {
				if err := c.MoveServo(p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cycles: %d\n", c.CycleCount())
				return nil
			})
		},
	}
	addMoveFlags(cmd, &p)
	cmd.Flags().Uint32Var(&p.Target, "position", 0, "Target encoder position")
	_ = cmd.MarkFlagRequired("position")
	return cmd
}

func addMoveFlags(cmd *cobra.Command, p *servo.MoveParams) {
	cmd.Flags().Uint16Var(&p.Acceleration, "accel", defaultMove.Acceleration, "Acceleration register value")
	cmd.Flags().Uint16Var(&p.Deceleration, "decel", defaultMove.Deceleration, "Deceleration register value")
	cmd.Flags().Uint16Var(&p.Velocity, "velocity", defaultMove.Velocity, "Velocity register value")
}

func NewShutdownCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Issue the disconnect handshake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.connect(nil)
			if err != nil {
				return err
			}
			defer c.Close()
			return c.Shutdown()
		},
	}
}
