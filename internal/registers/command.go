// internal/registers/command.go
package registers

import "fmt"

// Command is a code written to the ExecuteCommand register.
type Command uint16

const (
	CmdEnable     Command = 159
	CmdDisable    Command = 158
	CmdReset      Command = 186
	CmdHome       Command = 120
	CmdMove       Command = 103
	CmdDisconnect Command = 254
)

func (c Command) String() string {
	switch c {
	case CmdEnable:
		return "enable"
	case CmdDisable:
		return "disable"
	case CmdReset:
		return "reset"
	case CmdHome:
		return "home"
	case CmdMove:
		return "move"
	case CmdDisconnect:
		return "disconnect"
	default:
		return fmt.Sprintf("command(%d)", uint16(c))
	}
}
