package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	probeTimeout = 2 * time.Second
)

// Printer writes raw ESC/POS bytes to a thermal printer. Implementations
// open and close the underlying transport per print job, so Close is
// only needed for long-lived handles.
type Printer interface {
	Print(data []byte) error
	Close() error
	IsConnected() bool
}

// NewPrinterFromConfig builds a Printer for the configured transport.
// printerType is "usb" (writes usbPath, e.g. /dev/usb/lp0), "network"
// (dials address, e.g. 192.168.1.100:9100) or "none" for a no-op printer.
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}

type usbPrinter struct {
	devicePath string
}

// NewUSBPrinter returns a Printer backed by a USB line printer device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{devicePath: devicePath}
}

func (u *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(u.devicePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", u.devicePath, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", u.devicePath, err)
	}
	return nil
}

// Close is a no-op; the device file is reopened for each job.
func (u *usbPrinter) Close() error { return nil }

func (u *usbPrinter) IsConnected() bool {
	_, err := os.Stat(u.devicePath)
	return err == nil
}

type networkPrinter struct {
	address string
}

// NewNetworkPrinter returns a Printer that dials a raw TCP (JetDirect
// style) printer. The address must include the port.
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address}
}

func (n *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", n.address, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", n.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", n.address, err)
	}
	return nil
}

// Close is a no-op; a fresh connection is dialed for each job.
func (n *networkPrinter) Close() error { return nil }

// IsConnected probes the printer with a short dial.
func (n *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", n.address, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter returns a Printer that discards all output. Used when
// the shop runs without printing hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error       { return nil }
func (nullPrinter) IsConnected() bool  { return false }
