// Package beanstalk is a client for the beanstalkd work queue.
//
// A Conn is a single connection to a server, created by Dial. Producers put
// jobs into the tube selected with Use; workers reserve jobs from the tubes
// selected with Watch:
//
//	conn, err := beanstalk.Dial("localhost:11300", beanstalk.Config{})
//	if err != nil {
//		// handle error
//	}
//	defer conn.Close()
//
//	id, err := conn.Put([]byte("hello"), beanstalk.DefaultPriority, 0, beanstalk.DefaultTTR)
//
//	job, err := conn.ReserveWithTimeout(5 * time.Second)
//	if job != nil {
//		// process job.Body
//		err = job.Delete()
//	}
//
// # Connection model
//
// Each operation performs exactly one request/response round trip; the
// protocol has no pipelining, so only one request may be outstanding per
// connection. Every I/O wait is bounded by Config.Timeout (default 2s).
// A Conn holds no internal locks: concurrent use from multiple goroutines
// is undefined. Serialize access, or give each worker goroutine its own
// connection. There is no automatic reconnection; after ErrConnectionClosed
// or a timeout during an in-flight exchange, discard the Conn and Dial a
// new one.
//
// # Errors
//
// Server-signalled failures surface as *CommandError, carrying the command
// name, the status token, and its arguments. Statuses outside a command's
// expected sets surface as *UnexpectedResponseError. Two failures are
// deliberately translated instead: the peek family returns a nil job on
// NOT_FOUND, and Ignore treats the server's NOT_IGNORED refusal as a watch
// count of 1.
package beanstalk
