package beanstalk

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createListener starts a test server on a random port and returns its
// address. The handler runs once per accepted connection.
func createListener(t testing.TB, handler func(conn net.Conn)) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}

	t.Cleanup(func() {
		listener.Close()
	})

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func(c net.Conn) {
				defer c.Close()

				if handler != nil {
					handler(c)
				}
			}(conn)
		}
	}()

	return listener.Addr().String()
}

// scriptedConn is the server side of a scripted exchange. Expectations use
// assert rather than require because they run outside the test goroutine.
type scriptedConn struct {
	t      testing.TB
	conn   net.Conn
	reader *bufio.Reader
}

// scriptedServer starts a test server that runs the script against each
// accepted connection.
func scriptedServer(t testing.TB, script func(s *scriptedConn)) string {
	return createListener(t, func(conn net.Conn) {
		script(&scriptedConn{t: t, conn: conn, reader: bufio.NewReader(conn)})
	})
}

// expect reads one command line and asserts it matches, without the CRLF.
func (s *scriptedConn) expect(line string) {
	got, err := s.reader.ReadString('\n')
	if !assert.NoError(s.t, err, "server failed to read command") {
		return
	}
	assert.Equal(s.t, line+"\r\n", got)
}

// expectData reads a declared-length body plus its CRLF terminator and
// asserts the body matches.
func (s *scriptedConn) expectData(body string) {
	buf := make([]byte, len(body)+2)
	if _, err := io.ReadFull(s.reader, buf); !assert.NoError(s.t, err, "server failed to read body") {
		return
	}
	assert.Equal(s.t, body+"\r\n", string(buf))
}

// reply writes one response line, appending the CRLF.
func (s *scriptedConn) reply(line string) {
	s.conn.Write([]byte(line + "\r\n"))
}

// replyBody writes a response line followed by a declared-length body.
func (s *scriptedConn) replyBody(line, body string) {
	s.conn.Write([]byte(line + "\r\n" + body + "\r\n"))
}

// replyDoc writes an OK response carrying a document body, declaring the
// body length.
func (s *scriptedConn) replyDoc(body string) {
	s.replyBody(fmt.Sprintf("OK %d", len(body)), body)
}

// raw writes bytes exactly as given.
func (s *scriptedConn) raw(data string) {
	s.conn.Write([]byte(data))
}

func dialTest(t testing.TB, addr string) *Conn {
	conn, err := Dial(addr, Config{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}
