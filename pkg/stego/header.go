package stego

import (
	"encoding/binary"
)

// Carrier signatures, MSB-first in the bit stream. Presence is advertised
// on purpose: discoverability is a usability feature, and confidentiality
// rests on the AEAD key, not on hiding that a payload exists.
const (
	signatureOpen   uint16 = 0x4453 // "DS"
	signatureLocked uint16 = 0x444C // "DL"
)

// Signature reports what a scan found in a carrier.
type Signature int

const (
	// SignatureNone means the carrier holds no recognized payload.
	SignatureNone Signature = iota

	// SignatureOpen means a payload embedded without a password.
	SignatureOpen

	// SignatureLocked means a password-protected payload.
	SignatureLocked
)

// String returns the lower-case wire name used by the worker protocol and
// the HTTP API.
func (s Signature) String() string {
	switch s {
	case SignatureOpen:
		return "open"
	case SignatureLocked:
		return "locked"
	default:
		return "none"
	}
}

// header is the 272-bit frame occupying logical channels 0..271. It sits at
// a fixed position so scanning is cheap and so the decoder can recover the
// scatter seed before it knows anything else about the message.
type header struct {
	signature   uint16
	salt        [saltSize]byte
	nonce       [nonceSize]byte
	payloadBits uint32
}

// marshal packs the header fields into their 34-byte frame representation:
// signature, salt, nonce, then payload bit length, each big-endian and
// MSB-first within each byte.
func (h *header) marshal() []byte {
	frame := make([]byte, headerBits/8)
	binary.BigEndian.PutUint16(frame[0:2], h.signature)
	copy(frame[2:18], h.salt[:])
	copy(frame[18:30], h.nonce[:])
	binary.BigEndian.PutUint32(frame[30:34], h.payloadBits)
	return frame
}

// writeHeader embeds the frame into logical channels 0..271.
func writeHeader(buf []byte, h *header) error {
	return writeBits(buf, 0, h.marshal())
}

// readHeader recovers the frame from logical channels 0..271. It does not
// validate the signature; callers decide how to treat unknown magics.
func readHeader(buf []byte) (*header, error) {
	frame, err := readBits(buf, 0, headerBits)
	if err != nil {
		return nil, err
	}
	h := &header{
		signature:   binary.BigEndian.Uint16(frame[0:2]),
		payloadBits: binary.BigEndian.Uint32(frame[30:34]),
	}
	copy(h.salt[:], frame[2:18])
	copy(h.nonce[:], frame[18:30])
	return h, nil
}
