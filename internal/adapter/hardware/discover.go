package hardware

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/shirou/gopsutil/v4/host"
	"periph.io/x/conn/v3/gpio/gpioreg"
	periphhost "periph.io/x/host/v3"
)

// Device kinds.
const (
	KindHost    = "host"
	KindGPIO    = "gpio"
	KindSerial  = "serial"
	KindProbe   = "probe"
	KindNetwork = "network"
)

const (
	mdnsDomain      = "local."
	mdnsScanTimeout = 3 * time.Second
)

// Service types advertised by common maker boards.
var boardServiceTypes = []string{"_arduino._tcp", "_esphomelib._tcp"}

// Name fragments of USB debug probes under /dev/serial/by-id.
var probeMarkers = []string{"st-link", "stlink", "cmsis-dap", "j-link", "jlink", "daplink", "black_magic"}

// Device is one piece of hardware seen during discovery.
type Device struct {
	Name   string
	Kind   string
	Path   string
	Detail string
}

// Discoverer enumerates local hardware. Zero-valued fields use the real
// system locations.
type Discoverer struct {
	logger  *slog.Logger
	devDir  string
	byIDDir string
	gpio    func() ([]string, error)
	hostFn  func(ctx context.Context) (Device, error)
}

// NewDiscoverer creates a discoverer for the running machine.
func NewDiscoverer(logger *slog.Logger) *Discoverer {
	return &Discoverer{
		logger:  logger,
		devDir:  "/dev",
		byIDDir: "/dev/serial/by-id",
		gpio:    periphGPIO,
		hostFn:  hostDevice,
	}
}

// Discover returns the host summary followed by GPIO, serial and probe
// devices. Individual source failures are logged and skipped.
func (d *Discoverer) Discover(ctx context.Context) ([]Device, error) {
	var out []Device

	if h, err := d.hostFn(ctx); err != nil {
		d.logger.Debug("host info unavailable", "error", err)
	} else {
		out = append(out, h)
	}

	if pins, err := d.gpio(); err != nil {
		d.logger.Debug("gpio unavailable", "error", err)
	} else if len(pins) > 0 {
		out = append(out, Device{
			Name:   fmt.Sprintf("GPIO header (%d pins)", len(pins)),
			Kind:   KindGPIO,
			Detail: strings.Join(pins, ","),
		})
	}

	probes := d.probes()
	probePaths := make(map[string]bool, len(probes))
	for _, p := range probes {
		probePaths[p.Path] = true
	}
	for _, s := range d.serialPorts() {
		if !probePaths[s.Path] {
			out = append(out, s)
		}
	}
	out = append(out, probes...)

	return out, ctx.Err()
}

func (d *Discoverer) serialPorts() []Device {
	var out []Device
	for _, pattern := range []string{"ttyUSB*", "ttyACM*"} {
		matches, _ := filepath.Glob(filepath.Join(d.devDir, pattern))
		sort.Strings(matches)
		for _, m := range matches {
			out = append(out, Device{Name: filepath.Base(m), Kind: KindSerial, Path: m})
		}
	}
	return out
}

func (d *Discoverer) probes() []Device {
	links, _ := filepath.Glob(filepath.Join(d.byIDDir, "*"))
	sort.Strings(links)
	var out []Device
	for _, l := range links {
		name := strings.ToLower(filepath.Base(l))
		for _, marker := range probeMarkers {
			if strings.Contains(name, marker) {
				target, err := filepath.EvalSymlinks(l)
				if err != nil {
					target = l
				}
				out = append(out, Device{Name: filepath.Base(l), Kind: KindProbe, Path: target})
				break
			}
		}
	}
	return out
}

func periphGPIO() ([]string, error) {
	if _, err := periphhost.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	pins := gpioreg.All()
	names := make([]string, 0, len(pins))
	for _, p := range pins {
		names = append(names, p.Name())
	}
	return names, nil
}

func hostDevice(ctx context.Context) (Device, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Device{}, fmt.Errorf("host info: %w", err)
	}
	return Device{
		Name:   info.Hostname,
		Kind:   KindHost,
		Detail: fmt.Sprintf("%s %s %s (%s)", info.OS, info.Platform, info.PlatformVersion, info.KernelArch),
	}, nil
}

// ScanBoards browses mDNS for network-attached maker boards.
func (d *Discoverer) ScanBoards(ctx context.Context) ([]Device, error) {
	var boards []Device
	for _, svc := range boardServiceTypes {
		found, err := d.browse(ctx, svc)
		if err != nil {
			return nil, err
		}
		boards = append(boards, found...)
	}
	return boards, nil
}

func (d *Discoverer) browse(ctx context.Context, service string) ([]Device, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("mdns resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var out []Device
	var wg sync.WaitGroup

	scanCtx, cancel := context.WithTimeout(ctx, mdnsScanTimeout)
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for entry := range entries {
			dev := entryToDevice(service, entry)
			out = append(out, dev)
			d.logger.Debug("mdns discovered board", "name", dev.Name, "address", dev.Path)
		}
	}()

	if err := resolver.Browse(scanCtx, service, mdnsDomain, entries); err != nil {
		return nil, fmt.Errorf("mdns browse: %w", err)
	}

	<-scanCtx.Done()
	wg.Wait()
	return out, nil
}

func entryToDevice(service string, entry *zeroconf.ServiceEntry) Device {
	var address string
	if len(entry.AddrIPv4) > 0 {
		address = fmt.Sprintf("%s:%d", entry.AddrIPv4[0], entry.Port)
	} else if len(entry.AddrIPv6) > 0 {
		address = fmt.Sprintf("[%s]:%d", entry.AddrIPv6[0], entry.Port)
	}
	return Device{
		Name:   entry.ServiceRecord.Instance,
		Kind:   KindNetwork,
		Path:   address,
		Detail: strings.TrimPrefix(strings.TrimSuffix(service, "._tcp"), "_"),
	}
}
