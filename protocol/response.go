package protocol

import "strings"

// Response is a parsed response line: a status token followed by its
// arguments, in order. Responses that carry a body declare the body length
// in their last argument; reading the body is the caller's concern.
type Response struct {
	Status Status
	Args   []string
}

// ParseLine parses a single response line, without its CRLF terminator.
func ParseLine(line []byte) (*Response, error) {
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return nil, &ParseError{Message: "empty response line"}
	}

	return &Response{
		Status: Status(fields[0]),
		Args:   fields[1:],
	}, nil
}

// StatusIn reports whether the response status is one of the given set.
func (r *Response) StatusIn(set []Status) bool {
	for _, s := range set {
		if r.Status == s {
			return true
		}
	}
	return false
}
