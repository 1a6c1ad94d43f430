package notify

import (
	"fmt"
	"io"
)

// Notifier is the capability interface for the user-visible alert surface.
// Delivery and its permission handshake are external collaborators; the
// scheduler only calls into this interface, so its dedup logic is testable
// without a real alert mechanism.
type Notifier interface {
	// RequestPermission reports whether the user has granted permission to
	// deliver alerts.
	RequestPermission() (bool, error)
	// Deliver shows a single alert message to the user.
	Deliver(message string) error
}

// WriterNotifier delivers alerts by writing lines to an output stream.
// Permission is always granted; a terminal needs no handshake.
type WriterNotifier struct {
	out io.Writer
}

// NewWriterNotifier creates a notifier that writes alerts to out.
func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

// RequestPermission always grants permission for terminal output.
func (n *WriterNotifier) RequestPermission() (bool, error) {
	return true, nil
}

// Deliver writes the alert message as a single line.
func (n *WriterNotifier) Deliver(message string) error {
	_, err := fmt.Fprintf(n.out, "%s\n", message)
	return err
}

// SilentNotifier swallows every alert. It stands in for an alert surface
// the user has not granted permission to.
type SilentNotifier struct{}

// RequestPermission always reports that permission was not granted.
func (n *SilentNotifier) RequestPermission() (bool, error) {
	return false, nil
}

// Deliver drops the message.
func (n *SilentNotifier) Deliver(message string) error {
	return nil
}
