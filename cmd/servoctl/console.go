// cmd/servoctl/console.go
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tamzrod/modbus-servo/internal/servo"
	"github.com/tamzrod/modbus-servo/internal/status"
)

// defaultMove holds the motion profile used when none is given.
var defaultMove = servo.MoveParams{
	Acceleration: 100,
	Deceleration: 100,
	Velocity:     240,
}

// operator is the controller surface exposed in the console.
type operator interface {
	Name() string
	CycleCount() uint64
	ReadStatus() (status.Flags, error)
	ReadAlarms() (status.Flags, error)
	EncoderCount() (uint32, error)
	DumpRegisters() ([]uint16, error)
	EnableMotor() error
	DisableMotor() error
	ResetAlarmOrFault() error
	HomeServo() error
	Initialize() error
	MoveServo(servo.MoveParams) error
	Shutdown() error
}

func NewConsoleCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive operator shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          o.servo + "> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			// keep log lines from clobbering the prompt
			l, err := newLogger(rl.Stderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			o.logger = l

			return o.withController(nil, func(c *servo.Controller) error {
				cs := &console{op: c, out: rl.Stdout(), move: defaultMove}
				cs.printHelp()

				for {
					line, err := rl.Readline()
					if err != nil {
						if errors.Is(err, readline.ErrInterrupt) {
							continue
						}
						fmt.Fprintln(rl.Stdout(), "Exiting...")
						return nil
					}

					quit, err := cs.exec(line)
					if err != nil {
						fmt.Fprintf(rl.Stdout(), "error: %v\n", err)
					}
					if quit {
						return nil
					}
				}
			})
		},
	}
}

type console struct {
	op   operator
	out  io.Writer
	move servo.MoveParams // last used motion profile
}

// exec runs one console line. quit is true when the operator asked to leave.
func (cs *console) exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		cs.printHelp()
	case "exit", "quit":
		return true, nil
	case "status":
		st, err := cs.op.ReadStatus()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(cs.out, "Status: %s\n", st)
	case "alarms":
		alarms, err := cs.op.ReadAlarms()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(cs.out, "Alarms: %s\n", alarms)
	case "encoder", "pos":
		p, err := cs.op.EncoderCount()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(cs.out, "Encoder: %d\n", p)
	case "dump":
		regs, err := cs.op.DumpRegisters()
		if err != nil {
			return false, err
		}
		for n, v := range regs {
			fmt.Fprintf(cs.out, "Register %d: %d\n", n, v)
		}
	case "cycles":
		fmt.Fprintf(cs.out, "Cycles: %d\n", cs.op.CycleCount())
	case "enable":
		return false, cs.op.EnableMotor()
	case "disable":
		return false, cs.op.DisableMotor()
	case "reset":
		return false, cs.op.ResetAlarmOrFault()
	case "home":
		return false, cs.op.HomeServo()
	case "init":
		return false, cs.op.Initialize()
	case "shutdown":
		return false, cs.op.Shutdown()
	case "move":
		p, err := parseMove(args, cs.move)
		if err != nil {
			return false, err
		}
		cs.move = p
		if err := cs.op.MoveServo(p); err != nil {
			return false, err
		}
		fmt.Fprintf(cs.out, "Cycles: %d\n", cs.op.CycleCount())
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

// parseMove parses "<position> [accel decel velocity]".
// Missing profile values are taken from prev.
func parseMove(args []string, prev servo.MoveParams) (servo.MoveParams, error) {
	if len(args) != 1 && len(args) != 4 {
		return prev, errors.New("usage: move <position> [accel decel velocity]")
	}

	p := prev
	target, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return prev, fmt.Errorf("position %q: %w", args[0], err)
	}
	p.Target = uint32(target)

	if len(args) == 4 {
		profile := []*uint16{&p.Acceleration, &p.Deceleration, &p.Velocity}
		for i, dst := range profile {
			v, err := strconv.ParseUint(args[i+1], 10, 16)
			if err != nil {
				return prev, fmt.Errorf("profile value %q: %w", args[i+1], err)
			}
			*dst = uint16(v)
		}
	}
	return p, nil
}

func (cs *console) printHelp() {
	fmt.Fprintf(cs.out, `Commands for %s:
  status | alarms | encoder | dump | cycles
  enable | disable | reset | home | init | shutdown
  move <position> [accel decel velocity]
  help | exit
`, cs.op.Name())
}
