package beanstalk

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/pior/beanstalk/protocol"
)

// exchange performs one request/response round trip: send the command,
// read one response line. Bodies, when declared, are read by the caller.
func (c *Conn) exchange(cmd []byte, timeout time.Duration) (*protocol.Response, error) {
	if err := c.send(cmd, timeout); err != nil {
		return nil, err
	}
	return c.readLine(timeout)
}

// roundTrip runs exchange, through the circuit breaker when one is
// configured. Recognized failure statuses are ordinary responses here, so
// they never trip the breaker; only transport and parse errors do.
func (c *Conn) roundTrip(cmd []byte, timeout time.Duration) (*protocol.Response, error) {
	if c.breaker == nil {
		return c.exchange(cmd, timeout)
	}
	return c.breaker.Execute(func() (*protocol.Response, error) {
		return c.exchange(cmd, timeout)
	})
}

// interact sends a command and classifies the response status. A status in
// ok returns the response arguments. A status in fail returns a
// CommandError. Anything else returns an UnexpectedResponseError, since it
// implies the connection is desynchronized.
//
// A zero timeout means the connection's configured timeout. Every public
// operation is built on this method.
func (c *Conn) interact(op string, cmd []byte, ok, fail []protocol.Status, timeout time.Duration) ([]string, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}

	resp, err := c.roundTrip(cmd, timeout)
	if err != nil {
		c.metrics.recordError()
		return nil, err
	}

	switch {
	case resp.StatusIn(ok):
		return resp.Args, nil
	case resp.StatusIn(fail):
		return nil, &CommandError{Op: op, Status: resp.Status, Args: resp.Args}
	default:
		c.metrics.recordError()
		slog.Error("beanstalk: unexpected response status",
			"command", op, "status", string(resp.Status), "args", resp.Args)
		return nil, &UnexpectedResponseError{Op: op, Status: resp.Status, Args: resp.Args}
	}
}

// interactValue runs interact and returns the first response argument.
func (c *Conn) interactValue(op string, cmd []byte, ok, fail []protocol.Status) (string, error) {
	args, err := c.interact(op, cmd, ok, fail, 0)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", &protocol.ParseError{Message: op + ": response is missing an argument"}
	}
	return args[0], nil
}

// interactJob runs interact expecting an (id, size) response, reads the
// declared body, and builds a Job. The reserved flag is supplied by the
// caller: true for reserve, false for peek.
func (c *Conn) interactJob(op string, cmd []byte, ok, fail []protocol.Status, reserved bool, timeout time.Duration) (*Job, error) {
	args, err := c.interact(op, cmd, ok, fail, timeout)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, &protocol.ParseError{Message: op + ": response is missing id or size"}
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return nil, &protocol.ParseError{Message: op + ": invalid job id", Err: err}
	}
	size, err := strconv.Atoi(args[1])
	if err != nil || size < 0 {
		return nil, &protocol.ParseError{Message: op + ": invalid body size", Err: err}
	}

	body, err := c.readBody(size, c.timeout)
	if err != nil {
		c.metrics.recordError()
		return nil, err
	}

	return &Job{conn: c, ID: id, Body: body, Reserved: reserved}, nil
}

// interactDocument runs interact expecting a (size) response, reads the
// declared body, and decodes it as a Document.
func (c *Conn) interactDocument(op string, cmd []byte, ok, fail []protocol.Status) (*Document, error) {
	args, err := c.interact(op, cmd, ok, fail, 0)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, &protocol.ParseError{Message: op + ": response is missing a size"}
	}

	size, err := strconv.Atoi(args[0])
	if err != nil || size < 0 {
		return nil, &protocol.ParseError{Message: op + ": invalid body size", Err: err}
	}

	body, err := c.readBody(size, c.timeout)
	if err != nil {
		c.metrics.recordError()
		return nil, err
	}

	return DecodeDocument(body)
}

// interactPeek runs interactJob for a peek command, translating a
// NOT_FOUND failure into a nil job. This is the one place a recognized
// failure is swallowed rather than surfaced.
func (c *Conn) interactPeek(op string, cmd []byte) (*Job, error) {
	job, err := c.interactJob(op, cmd,
		[]protocol.Status{protocol.StatusFound},
		[]protocol.Status{protocol.StatusNotFound},
		false, 0)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.Status == protocol.StatusNotFound {
			c.metrics.recordPeek(false)
			return nil, nil
		}
		return nil, err
	}

	c.metrics.recordPeek(true)
	return job, nil
}
