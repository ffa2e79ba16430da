// Package protocol implements the wire format of the beanstalkd text
// protocol: command serialization, response line parsing, and tube name
// validation.
//
// This package is pure format and parse logic without any I/O. It serves as
// the foundation for the beanstalk.Conn type, which owns the socket and the
// receive buffer.
//
// # Wire format
//
// Commands are ASCII lines terminated by CRLF. Commands that carry a body
// (only "put") state the body length in the header line and append
// <body>\r\n after it:
//
//	put <pri> <delay> <ttr> <bytes>\r\n
//	<body>\r\n
//
// Responses begin with a status token, optionally followed by
// space-separated arguments, and end with CRLF. Responses that carry a body
// declare its length in the last argument and append <body>\r\n:
//
//	RESERVED <id> <bytes>\r\n
//	<body>\r\n
//
// ParseLine parses a single response line (without its CRLF) into a Response.
// Body extraction is the caller's concern, since it requires access to the
// receive buffer.
package protocol
