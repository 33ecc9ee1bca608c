package worker

import (
	"github.com/mecodix/dontsee/pkg/stego"
)

// Op names a codec operation carried by a request.
type Op string

const (
	// OpScan checks a carrier for a signature.
	OpScan Op = "scan"

	// OpEncode embeds a plaintext into a carrier.
	OpEncode Op = "encode"

	// OpDecode recovers a plaintext from a carrier.
	OpDecode Op = "decode"
)

// Request is one unit of work submitted to a Worker. The correlation ID
// ties every response back to its request; callers that leave it empty get
// a generated one from Submit.
//
// Pixels is the raw RGBA carrier. Ownership transfers to the worker on
// submit and returns to the caller with the terminal response; the caller
// must not touch the buffer in between.
type Request struct {
	ID     string
	Op     Op
	Pixels []byte
	Width  int
	Height int

	// Plaintext is the message to embed. Encode only.
	Plaintext string

	// Password protects the payload. Empty means an open carrier.
	// Encode and decode.
	Password string
}

// Response is a message from the worker correlated to one request. A
// request produces zero or more non-terminal Progress responses followed by
// exactly one terminal response.
type Response interface {
	// RequestID returns the correlation ID of the originating request.
	RequestID() string

	// Terminal reports whether this response completes the request.
	Terminal() bool
}

// Progress reports embedding/extraction progress. Percent is 0-100 and
// non-decreasing within one request.
type Progress struct {
	ID      string
	Percent int
}

// ScanResult is the terminal success response for OpScan.
type ScanResult struct {
	ID        string
	Signature stego.Signature
}

// EncodeResult is the terminal success response for OpEncode. Pixels is the
// mutated carrier, ownership transferred back to the caller.
type EncodeResult struct {
	ID     string
	Pixels []byte
}

// DecodeResult is the terminal success response for OpDecode.
type DecodeResult struct {
	ID   string
	Text string
}

// ErrorResult is the terminal failure response for any operation. Kind is a
// stable codec error kind, "Canceled" for an abandoned operation, or
// "Internal" for anything else.
type ErrorResult struct {
	ID      string
	Kind    string
	Message string
}

func (p Progress) RequestID() string     { return p.ID }
func (p Progress) Terminal() bool        { return false }
func (r ScanResult) RequestID() string   { return r.ID }
func (r ScanResult) Terminal() bool      { return true }
func (r EncodeResult) RequestID() string { return r.ID }
func (r EncodeResult) Terminal() bool    { return true }
func (r DecodeResult) RequestID() string { return r.ID }
func (r DecodeResult) Terminal() bool    { return true }
func (e ErrorResult) RequestID() string  { return e.ID }
func (e ErrorResult) Terminal() bool     { return true }
