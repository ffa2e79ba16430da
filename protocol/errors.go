package protocol

import "strconv"

// ParseError represents a client-side parsing failure: the server sent
// bytes the client could not interpret, which suggests either a protocol
// violation by the server or a desynchronized connection. The connection
// should be closed, as the position of the next response is unknown.
type ParseError struct {
	Message string
	Err     error // underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "beanstalk: parse error: " + e.Message + ": " + e.Err.Error()
	}
	return "beanstalk: parse error: " + e.Message
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidNameError is returned when a tube name fails validation. The name
// was rejected client-side and nothing was sent; the connection remains
// usable.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	name := e.Name
	if len(name) > 40 {
		name = name[:40] + "..."
	}
	return "beanstalk: invalid tube name " + strconv.Quote(name) + ": " + e.Reason
}
