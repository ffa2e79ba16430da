package beanstalk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pior/beanstalk/protocol"
)

var (
	// ErrConnectionClosed is returned when the server closes the socket
	// mid-read. The connection is unusable and must be re-dialed.
	ErrConnectionClosed = errors.New("beanstalk: connection closed")

	// ErrTimeout is returned when an I/O deadline expires. The connection
	// object remains structurally usable, but if the deadline expired
	// mid-response the receive buffer may hold a partial line; callers
	// should treat a timeout during an in-flight exchange as
	// connection-invalidating and re-dial.
	ErrTimeout = errors.New("beanstalk: i/o timeout")

	// ErrDeadlineSoon is returned by reserve when the server warns that an
	// existing reservation held by this connection is about to expire.
	ErrDeadlineSoon = errors.New("beanstalk: deadline soon")
)

// CommandError is returned when the server answers a command with one of
// the failure statuses recognized for that command, such as NOT_FOUND for
// delete. It carries the command name, the status, and any arguments.
type CommandError struct {
	Op     string
	Status protocol.Status
	Args   []string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("beanstalk: %s failed: %s", e.Op, statusWithArgs(e.Status, e.Args))
}

// UnexpectedResponseError is returned when the server answers with a status
// outside both the expected-success and expected-failure sets for the
// command. This indicates a protocol desync or a server defect; the
// connection should be closed.
type UnexpectedResponseError struct {
	Op     string
	Status protocol.Status
	Args   []string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("beanstalk: %s: unexpected response: %s", e.Op, statusWithArgs(e.Status, e.Args))
}

func statusWithArgs(status protocol.Status, args []string) string {
	if len(args) == 0 {
		return string(status)
	}
	return string(status) + " " + strings.Join(args, " ")
}
