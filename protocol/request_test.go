package protocol

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/nioserve/nioserve/api"
)

func TestParseRequestCanonical(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if req.Method() != "GET" {
		t.Errorf("method: got %q", req.Method())
	}
	if req.Target() != "/" {
		t.Errorf("target: got %q", req.Target())
	}
	if req.Version() != "HTTP/1.1" {
		t.Errorf("version: got %q", req.Version())
	}
	host, ok := req.Header("Host")
	if !ok || host != "x" {
		t.Errorf("Host: got %q, %v", host, ok)
	}
}

func TestParseRequestUppercasesMethod(t *testing.T) {
	req, err := ParseRequest([]byte("get /index http/1.0\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if req.Method() != "GET" {
		t.Fatalf("got %q", req.Method())
	}
	// Only the method is case-normalized.
	if req.Version() != "http/1.0" {
		t.Fatalf("version altered: %q", req.Version())
	}
}

func TestParseRequestDuplicateHeaderLastWins(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nX-Id: first\r\nX-Id: second\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := req.Header("X-Id")
	if v != "second" {
		t.Fatalf("got %q, want last value", v)
	}
}

func TestParseRequestHeaderSplitsOnFirstColon(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nHost: a:5555\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	v, _ := req.Header("Host")
	if v != "a:5555" {
		t.Fatalf("got %q", v)
	}
}

func TestParseRequestShortRequestLine(t *testing.T) {
	_, err := ParseRequest([]byte("GET /\r\n\r\n"))
	if errors.Cause(err) != api.ErrMalformedRequestLine {
		t.Fatalf("got %v, want ErrMalformedRequestLine", err)
	}
}

func TestParseRequestHeaderWithoutColon(t *testing.T) {
	_, err := ParseRequest([]byte("GET / HTTP/1.1\r\nbogus header\r\n\r\n"))
	if errors.Cause(err) != api.ErrMalformedHeader {
		t.Fatalf("got %v, want ErrMalformedHeader", err)
	}
}

func TestParseRequestKeysKeptVerbatim(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\nx-lower-key: v\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := req.Header("X-Lower-Key"); ok {
		t.Fatal("keys must not be canonicalized")
	}
	if v, ok := req.Header("x-lower-key"); !ok || v != "v" {
		t.Fatalf("got %q, %v", v, ok)
	}
}
