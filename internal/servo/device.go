// internal/servo/device.go
package servo

import "fmt"

// Device identifies one physical actuator.
type Device struct {
	Name       string // operator-assigned label
	Address    string // resolved network endpoint
	ConfigPath string // resource file the address was resolved from
}

func (d Device) String() string {
	return fmt.Sprintf("servo %s using address %s", d.Name, d.Address)
}
