package beanstalk

import (
	"bytes"
	"io"
	"net"
	"time"

	"github.com/pior/beanstalk/protocol"
	"github.com/sony/gobreaker/v2"
)

// readChunkSize bounds a single read from the socket.
const readChunkSize = 4096

var crlf = []byte(protocol.CRLF)

// Conn is a single connection to a beanstalkd server.
//
// A Conn performs exactly one request/response round trip per operation; the
// protocol has no pipelining. It holds no internal locks: concurrent calls
// from multiple goroutines are undefined. Either serialize access or use one
// Conn per worker goroutine.
type Conn struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	breaker *gobreaker.CircuitBreaker[*protocol.Response]
	metrics *connMetricsCollector

	// buf holds exactly the bytes read from the socket and not yet
	// consumed by a line or body read.
	buf     []byte
	scratch []byte

	closed bool
}

// Dial connects to the beanstalkd server at addr ("host:port"). An empty
// addr means DefaultAddr. The connect is bounded by the configured timeout.
func Dial(addr string, config Config) (*Conn, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	timeout := config.timeout()

	dialer := config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{Timeout: timeout}
	}

	netConn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	if config.KeepAlive {
		if tc, ok := netConn.(*net.TCPConn); ok {
			if err := tc.SetKeepAlive(true); err != nil {
				netConn.Close()
				return nil, err
			}
		}
	}

	c := &Conn{
		addr:    addr,
		timeout: timeout,
		conn:    netConn,
		scratch: make([]byte, readChunkSize),
		metrics: newConnMetricsCollector(),
	}
	if config.NewCircuitBreaker != nil {
		c.breaker = config.NewCircuitBreaker(addr)
	}
	return c, nil
}

// Addr returns the server address this connection was dialed with.
func (c *Conn) Addr() string {
	return c.addr
}

// Close sends a best-effort quit command, ignoring all errors, and closes
// the socket. It is safe to call more than once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	c.conn.Write(protocol.FormatQuit())
	c.conn.Close()
	return nil
}

// send writes a complete command under a write deadline.
func (c *Conn) send(data []byte, timeout time.Duration) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(data); err != nil {
		return c.ioError(err)
	}
	return nil
}

// readLine reads from the socket until the buffer holds a full
// CRLF-terminated line, then splits it off and parses it. Any bytes beyond
// the line remain buffered. The whole read is bounded by one deadline.
func (c *Conn) readLine(timeout time.Duration) (*protocol.Response, error) {
	deadline := time.Now().Add(timeout)

	for {
		if i := bytes.Index(c.buf, crlf); i >= 0 {
			resp, err := protocol.ParseLine(c.buf[:i])
			c.buf = c.buf[i+len(crlf):]
			return resp, err
		}

		if err := c.readChunk(deadline); err != nil {
			return nil, err
		}
	}
}

// readBody reads from the socket until the buffer holds n body bytes plus
// the CRLF terminator, then returns a copy of the body. The terminator is
// consumed and verified; any excess bytes remain buffered for the next
// response.
func (c *Conn) readBody(n int, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	full := n + len(crlf)

	for len(c.buf) < full {
		if err := c.readChunk(deadline); err != nil {
			return nil, err
		}
	}

	if !bytes.Equal(c.buf[n:full], crlf) {
		return nil, &protocol.ParseError{Message: "body is not terminated by CRLF"}
	}

	body := make([]byte, n)
	copy(body, c.buf[:n])
	c.buf = c.buf[full:]
	return body, nil
}

// readChunk performs one bounded read and appends whatever arrived to the
// buffer. A clean EOF from the peer becomes ErrConnectionClosed.
func (c *Conn) readChunk(deadline time.Time) error {
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return err
	}

	n, err := c.conn.Read(c.scratch)
	if n > 0 {
		c.buf = append(c.buf, c.scratch[:n]...)
		return nil
	}
	if err != nil {
		return c.ioError(err)
	}
	return nil
}

// ioError maps transport errors to the package's typed errors. Deadline
// expiry becomes ErrTimeout and a peer close becomes ErrConnectionClosed;
// anything else propagates as-is.
func (c *Conn) ioError(err error) error {
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return ErrTimeout
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrConnectionClosed
	}
	return err
}
