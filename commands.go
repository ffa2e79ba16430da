package beanstalk

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pior/beanstalk/protocol"
)

// Put inserts a job with the given body into the currently used tube and
// returns its id. Lower priority values are more urgent; delay postpones
// the job and ttr bounds how long a reservation of it may last.
//
// A BURIED response still carries an id: the server ran out of memory
// growing its priority queue and buried the job on arrival.
func (c *Conn) Put(body []byte, pri uint32, delay, ttr time.Duration) (uint64, error) {
	value, err := c.interactValue(protocol.CmdPut,
		protocol.FormatPut(pri, seconds(delay), seconds(ttr), body),
		[]protocol.Status{protocol.StatusInserted, protocol.StatusBuried},
		[]protocol.Status{protocol.StatusJobTooBig})
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, &protocol.ParseError{Message: "put: invalid job id", Err: err}
	}

	c.metrics.recordPut()
	return id, nil
}

// Reserve leases a job from one of the watched tubes. The server holds the
// request until a job becomes ready, so the exchange is bounded only by the
// connection's configured timeout; long-polling workers should prefer
// ReserveWithTimeout.
//
// Returns ErrDeadlineSoon when the server warns that a reservation already
// held by this connection is about to expire.
func (c *Conn) Reserve() (*Job, error) {
	return c.reserve(protocol.FormatReserve(), 0)
}

// ReserveWithTimeout leases a job from one of the watched tubes, waiting at
// most the given duration server-side. Returns a nil job when the wait
// elapses without a deliverable job. The socket deadline is the server-side
// timeout plus the connection's configured timeout, so a well-behaved
// server always answers first.
func (c *Conn) ReserveWithTimeout(timeout time.Duration) (*Job, error) {
	return c.reserve(protocol.FormatReserveWithTimeout(seconds(timeout)), timeout+c.timeout)
}

func (c *Conn) reserve(cmd []byte, socketTimeout time.Duration) (*Job, error) {
	job, err := c.interactJob(protocol.CmdReserve, cmd,
		[]protocol.Status{protocol.StatusReserved},
		[]protocol.Status{protocol.StatusDeadlineSoon, protocol.StatusTimedOut},
		true, socketTimeout)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			switch cmdErr.Status {
			case protocol.StatusTimedOut:
				c.metrics.recordReserve(false)
				return nil, nil
			case protocol.StatusDeadlineSoon:
				return nil, ErrDeadlineSoon
			}
		}
		return nil, err
	}

	c.metrics.recordReserve(true)
	return job, nil
}

// Delete removes a job from the server. Fails with a NOT_FOUND
// CommandError when the job does not exist or is reserved by another
// connection; deleting the same id twice fails the same way.
func (c *Conn) Delete(id uint64) error {
	_, err := c.interact(protocol.CmdDelete, protocol.FormatDelete(id),
		[]protocol.Status{protocol.StatusDeleted},
		[]protocol.Status{protocol.StatusNotFound}, 0)
	if err != nil {
		return err
	}
	c.metrics.recordDelete()
	return nil
}

// Release puts a reserved job back into the ready queue, with a new
// priority and an optional delay before it becomes ready.
func (c *Conn) Release(id uint64, pri uint32, delay time.Duration) error {
	_, err := c.interact(protocol.CmdRelease, protocol.FormatRelease(id, pri, seconds(delay)),
		[]protocol.Status{protocol.StatusReleased, protocol.StatusBuried},
		[]protocol.Status{protocol.StatusNotFound}, 0)
	if err != nil {
		return err
	}
	c.metrics.recordRelease()
	return nil
}

// Bury moves a reserved job into the buried state, excluded from delivery
// until kicked.
func (c *Conn) Bury(id uint64, pri uint32) error {
	_, err := c.interact(protocol.CmdBury, protocol.FormatBury(id, pri),
		[]protocol.Status{protocol.StatusBuried},
		[]protocol.Status{protocol.StatusNotFound}, 0)
	if err != nil {
		return err
	}
	c.metrics.recordBury()
	return nil
}

// Touch extends the time-to-run of a reserved job, requesting more time to
// work on it.
func (c *Conn) Touch(id uint64) error {
	_, err := c.interact(protocol.CmdTouch, protocol.FormatTouch(id),
		[]protocol.Status{protocol.StatusTouched},
		[]protocol.Status{protocol.StatusNotFound}, 0)
	if err != nil {
		return err
	}
	c.metrics.recordTouch()
	return nil
}

// Kick moves at most bound buried jobs, or delayed jobs if there are no
// buried ones, back into the ready queue of the currently used tube.
// Returns the number of jobs kicked.
func (c *Conn) Kick(bound int) (int64, error) {
	value, err := c.interactValue(protocol.CmdKick, protocol.FormatKick(int64(bound)),
		[]protocol.Status{protocol.StatusKicked}, nil)
	if err != nil {
		return 0, err
	}

	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &protocol.ParseError{Message: "kick: invalid count", Err: err}
	}

	c.metrics.recordKick()
	return count, nil
}

// Peek returns the job with the given id without reserving it, or nil if
// no such job exists.
func (c *Conn) Peek(id uint64) (*Job, error) {
	return c.interactPeek(protocol.CmdPeek, protocol.FormatPeek(id))
}

// PeekReady returns the next ready job in the currently used tube, or nil.
func (c *Conn) PeekReady() (*Job, error) {
	return c.interactPeek(protocol.CmdPeekReady, protocol.FormatPeekReady())
}

// PeekDelayed returns the delayed job with the shortest remaining delay in
// the currently used tube, or nil.
func (c *Conn) PeekDelayed() (*Job, error) {
	return c.interactPeek(protocol.CmdPeekDelayed, protocol.FormatPeekDelayed())
}

// PeekBuried returns the next buried job in the currently used tube, or nil.
func (c *Conn) PeekBuried() (*Job, error) {
	return c.interactPeek(protocol.CmdPeekBuried, protocol.FormatPeekBuried())
}

// Use selects the tube subsequent Put commands insert into. Returns the
// name of the tube now in use.
func (c *Conn) Use(name string) (string, error) {
	if err := protocol.ValidateTubeName(name); err != nil {
		return "", err
	}
	return c.interactValue(protocol.CmdUse, protocol.FormatUse(name),
		[]protocol.Status{protocol.StatusUsing}, nil)
}

// Watch adds a tube to the watch list consulted by reserve. Returns the
// number of tubes now watched.
func (c *Conn) Watch(name string) (int, error) {
	if err := protocol.ValidateTubeName(name); err != nil {
		return 0, err
	}
	return c.watchCount(protocol.CmdWatch, protocol.FormatWatch(name), nil)
}

// Ignore removes a tube from the watch list. Attempting to ignore the only
// watched tube is tolerated: the server's NOT_IGNORED refusal is translated
// into a count of 1 rather than an error.
func (c *Conn) Ignore(name string) (int, error) {
	if err := protocol.ValidateTubeName(name); err != nil {
		return 0, err
	}

	count, err := c.watchCount(protocol.CmdIgnore, protocol.FormatIgnore(name),
		[]protocol.Status{protocol.StatusNotIgnored})
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.Status == protocol.StatusNotIgnored {
			return 1, nil
		}
		return 0, err
	}
	return count, nil
}

func (c *Conn) watchCount(op string, cmd []byte, fail []protocol.Status) (int, error) {
	value, err := c.interactValue(op, cmd,
		[]protocol.Status{protocol.StatusWatching}, fail)
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, &protocol.ParseError{Message: op + ": invalid watch count", Err: err}
	}
	return count, nil
}

// Tubes returns the names of all tubes existing on the server.
func (c *Conn) Tubes() ([]string, error) {
	return c.listTubes(protocol.CmdListTubes, protocol.FormatListTubes())
}

// Using returns the name of the tube Put commands currently insert into.
func (c *Conn) Using() (string, error) {
	return c.interactValue(protocol.CmdListTubeUsed, protocol.FormatListTubeUsed(),
		[]protocol.Status{protocol.StatusUsing}, nil)
}

// Watching returns the names of the tubes currently watched by this
// connection.
func (c *Conn) Watching() ([]string, error) {
	return c.listTubes(protocol.CmdListTubesWatched, protocol.FormatListTubesWatched())
}

func (c *Conn) listTubes(op string, cmd []byte) ([]string, error) {
	doc, err := c.interactDocument(op, cmd, []protocol.Status{protocol.StatusOK}, nil)
	if err != nil {
		return nil, err
	}
	if doc.Kind != DocumentList {
		return nil, fmt.Errorf("%w: %s: expected a list", ErrMalformedDocument, op)
	}
	return doc.List, nil
}

// Stats returns a document of server-wide statistics.
func (c *Conn) Stats() (*Document, error) {
	return c.statsDocument(protocol.CmdStats, protocol.FormatStats(), nil)
}

// StatsTube returns a document of statistics about the named tube. Fails
// with a NOT_FOUND CommandError when no such tube exists.
func (c *Conn) StatsTube(name string) (*Document, error) {
	if err := protocol.ValidateTubeName(name); err != nil {
		return nil, err
	}
	return c.statsDocument(protocol.CmdStatsTube, protocol.FormatStatsTube(name),
		[]protocol.Status{protocol.StatusNotFound})
}

// StatsJob returns a document of statistics about a job. Fails with a
// NOT_FOUND CommandError when no such job exists.
func (c *Conn) StatsJob(id uint64) (*Document, error) {
	return c.statsDocument(protocol.CmdStatsJob, protocol.FormatStatsJob(id),
		[]protocol.Status{protocol.StatusNotFound})
}

func (c *Conn) statsDocument(op string, cmd []byte, fail []protocol.Status) (*Document, error) {
	doc, err := c.interactDocument(op, cmd, []protocol.Status{protocol.StatusOK}, fail)
	if err != nil {
		return nil, err
	}
	if doc.Kind != DocumentMap {
		return nil, fmt.Errorf("%w: %s: expected a mapping", ErrMalformedDocument, op)
	}
	return doc, nil
}

// PauseTube prevents the named tube from delivering jobs for the given
// duration.
func (c *Conn) PauseTube(name string, delay time.Duration) error {
	if err := protocol.ValidateTubeName(name); err != nil {
		return err
	}

	_, err := c.interact(protocol.CmdPauseTube, protocol.FormatPauseTube(name, seconds(delay)),
		[]protocol.Status{protocol.StatusPaused},
		[]protocol.Status{protocol.StatusNotFound}, 0)
	return err
}

// seconds converts a duration to the whole seconds the wire format uses.
func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
