package hardware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeDiscoverer(t *testing.T) (*Discoverer, string) {
	t.Helper()
	dev := t.TempDir()
	byID := filepath.Join(dev, "serial", "by-id")
	require.NoError(t, os.MkdirAll(byID, 0o755))

	for _, name := range []string{"ttyUSB0", "ttyACM0", "ttyACM1", "ttyS0"} {
		require.NoError(t, os.WriteFile(filepath.Join(dev, name), nil, 0o600))
	}
	require.NoError(t, os.Symlink(filepath.Join(dev, "ttyACM1"),
		filepath.Join(byID, "usb-STMicroelectronics_STM32_STLink_0670FF-if02")))
	require.NoError(t, os.Symlink(filepath.Join(dev, "ttyUSB0"),
		filepath.Join(byID, "usb-FTDI_FT232R_USB_UART-if00-port0")))

	d := &Discoverer{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		devDir:  dev,
		byIDDir: byID,
		gpio:    func() ([]string, error) { return []string{"GPIO2", "GPIO3"}, nil },
		hostFn: func(context.Context) (Device, error) {
			return Device{Name: "pi", Kind: KindHost, Detail: "linux"}, nil
		},
	}
	return d, dev
}

func TestDiscover(t *testing.T) {
	d, dev := fakeDiscoverer(t)

	devices, err := d.Discover(context.Background())
	require.NoError(t, err)

	kinds := make([]string, 0, len(devices))
	for _, dv := range devices {
		kinds = append(kinds, dv.Kind)
	}
	assert.Equal(t, []string{KindHost, KindGPIO, KindSerial, KindSerial, KindProbe}, kinds)
	assert.Equal(t, "GPIO header (2 pins)", devices[1].Name)
	assert.Equal(t, filepath.Join(dev, "ttyUSB0"), devices[2].Path)
	assert.Equal(t, filepath.Join(dev, "ttyACM0"), devices[3].Path)

	probe := devices[4]
	assert.Equal(t, filepath.Join(dev, "ttyACM1"), probe.Path)
}

func TestDiscoverSkipsFailingSources(t *testing.T) {
	d, _ := fakeDiscoverer(t)
	d.gpio = func() ([]string, error) { return nil, errors.New("no gpio") }
	d.hostFn = func(context.Context) (Device, error) { return Device{}, errors.New("no host") }

	devices, err := d.Discover(context.Background())
	require.NoError(t, err)
	for _, dv := range devices {
		assert.NotEqual(t, KindGPIO, dv.Kind)
		assert.NotEqual(t, KindHost, dv.Kind)
	}
}

func TestConfigFromWizardChoice(t *testing.T) {
	devices := []Device{
		{Name: "pi", Kind: KindHost},
		{Name: "ttyUSB0", Kind: KindSerial, Path: "/dev/ttyUSB0"},
		{Name: "ttyACM0", Kind: KindSerial, Path: "/dev/ttyACM0"},
		{Name: "stlink", Kind: KindProbe, Path: "/dev/ttyACM1"},
	}

	serial := ConfigFromWizardChoice(ChoiceSerial, devices)
	assert.True(t, serial.Enabled)
	assert.Equal(t, "serial", serial.Transport)
	require.NotNil(t, serial.SerialPort)
	assert.Equal(t, "/dev/ttyUSB0", *serial.SerialPort)
	assert.Nil(t, serial.ProbeTarget)
	assert.Equal(t, uint32(115200), serial.BaudRate)
	assert.Len(t, serial.Devices, 4)

	probe := ConfigFromWizardChoice(ChoiceProbe, devices)
	assert.Equal(t, "probe", probe.Transport)
	require.NotNil(t, probe.ProbeTarget)
	assert.Equal(t, "/dev/ttyACM1", *probe.ProbeTarget)

	native := ConfigFromWizardChoice(ChoiceNative, nil)
	assert.True(t, native.Enabled)
	assert.Equal(t, "native", native.Transport)

	none := ConfigFromWizardChoice(ChoiceSoftwareOnly, devices)
	assert.False(t, none.Enabled)
	assert.Equal(t, "none", none.Transport)
	assert.Nil(t, none.SerialPort)
}
