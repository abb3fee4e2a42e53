// Package protocol implements the line-oriented HTTP/1.x wire layer:
// incremental CRLF line extraction from a non-blocking byte stream, request
// parsing, and response construction with deterministic header ordering.
package protocol
