package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS bytes to a receipt printer
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// IsConnected checks the device without printing
	IsConnected(ctx context.Context) bool
	// Kind is "usb", "network" or "none"
	Kind() string
}

// Options select and address a printer
type Options struct {
	Type       string
	DevicePath string
	Address    string
	Timeout    time.Duration
}

// New builds the printer named by opts.Type. An empty type means no printer.
func New(opts Options) (Printer, error) {
	switch opts.Type {
	case "usb":
		if opts.DevicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for usb printers")
		}
		return &usbPrinter{path: opts.DevicePath}, nil
	case "network":
		if opts.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return &networkPrinter{address: opts.Address, timeout: timeout}, nil
	case "none", "":
		return nullPrinter{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network or none)", opts.Type)
	}
}

// usbPrinter writes to a character device such as /dev/usb/lp0, opening it per job
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Kind() string { return "usb" }

// networkPrinter dials a raw TCP port (usually 9100) per job
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: p.timeout}
	return dialer.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected(ctx context.Context) bool {
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return "network" }

// nullPrinter discards jobs when no hardware is configured
type nullPrinter struct{}

func (nullPrinter) Print(context.Context, []byte) error { return nil }

func (nullPrinter) IsConnected(context.Context) bool { return false }

func (nullPrinter) Kind() string { return "none" }
