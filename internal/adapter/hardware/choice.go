package hardware

import "zeroclaw/internal/infra/config"

// Choice is the wizard's hardware selection.
type Choice int

const (
	ChoiceNative Choice = iota
	ChoiceSerial
	ChoiceProbe
	ChoiceSoftwareOnly
)

// DefaultBaudRate is used for serial-tethered boards.
const DefaultBaudRate = 115200

// ChoiceLabels are shown on the hardware selection screen.
var ChoiceLabels = []string{
	"Native GPIO (Raspberry Pi, SBC header)",
	"Serial tethered board (Arduino, ESP32, STM32 over USB)",
	"Debug probe (SWD/JTAG via ST-Link, CMSIS-DAP)",
	"Software only (no hardware access)",
}

func (c Choice) transport() string {
	switch c {
	case ChoiceNative:
		return "native"
	case ChoiceSerial:
		return "serial"
	case ChoiceProbe:
		return "probe"
	default:
		return "none"
	}
}

// ConfigFromWizardChoice builds the hardware section for choice, filling
// ports from the first matching discovered device.
func ConfigFromWizardChoice(choice Choice, devices []Device) config.HardwareConfig {
	hw := config.HardwareConfig{
		Enabled:   choice != ChoiceSoftwareOnly,
		Transport: choice.transport(),
		BaudRate:  DefaultBaudRate,
	}
	for _, d := range devices {
		switch {
		case d.Kind == KindSerial && hw.SerialPort == nil && choice == ChoiceSerial:
			p := d.Path
			hw.SerialPort = &p
		case d.Kind == KindProbe && hw.ProbeTarget == nil && choice == ChoiceProbe:
			p := d.Path
			hw.ProbeTarget = &p
		}
		hw.Devices = append(hw.Devices, config.HardwareDevice{Name: d.Name, Kind: d.Kind, Path: d.Path})
	}
	return hw
}
