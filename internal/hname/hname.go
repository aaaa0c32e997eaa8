// Package hname derives stable 32-bit identifiers from contract interface names.
//
// An hname is the first four bytes of the BLAKE2b-256 digest of the UTF-8 name,
// read little-endian. When those four bytes are all zero the next four bytes are
// used instead. The fallback is applied once: a zero second window is returned
// as-is, so Nil remains reachable in theory. Consumers on the wire depend on this
// exact selection, so it must never change.
package hname

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	apperrors "github.com/allisson/hname/internal/errors"
)

// Size is the encoded length of an HName in bytes.
const Size = 4

// Nil is the reserved "no name" identifier.
const Nil HName = 0

// ErrInvalidHName indicates a textual or binary hname could not be decoded.
var ErrInvalidHName = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid hname")

// HName is the 32-bit hashed form of a name.
type HName uint32

// Hash returns the hname of name.
func Hash(name string) HName {
	return FromDigest(blake2b.Sum256([]byte(name)))
}

// HashBytes returns the hname of raw UTF-8 bytes.
func HashBytes(data []byte) HName {
	return FromDigest(blake2b.Sum256(data))
}

// FromDigest applies the window selection to a BLAKE2b-256 digest.
func FromDigest(digest [blake2b.Size256]byte) HName {
	window := digest[0:4]
	if isZero(window) {
		window = digest[4:8]
	}
	return HName(binary.LittleEndian.Uint32(window))
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsNil reports whether h is the reserved zero identifier.
func (h HName) IsNil() bool {
	return h == Nil
}

// String returns h as eight lowercase hex digits.
func (h HName) String() string {
	return fmt.Sprintf("%08x", uint32(h))
}

// Bytes returns the little-endian wire encoding of h.
func (h HName) Bytes() []byte {
	b := make([]byte, Size)
	binary.LittleEndian.PutUint32(b, uint32(h))
	return b
}

// FromBytes decodes the little-endian wire encoding produced by Bytes.
func FromBytes(b []byte) (HName, error) {
	if len(b) != Size {
		return Nil, apperrors.Wrap(ErrInvalidHName, fmt.Sprintf("expected %d bytes, got %d", Size, len(b)))
	}
	return HName(binary.LittleEndian.Uint32(b)), nil
}

// Parse decodes a hex hname. A "0x" prefix is optional and up to eight digits
// are accepted, so "1" and "00000001" parse to the same value.
func Parse(s string) (HName, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if digits == "" || len(digits) > 2*Size {
		return Nil, apperrors.Wrap(ErrInvalidHName, fmt.Sprintf("%q", s))
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return Nil, apperrors.Wrap(ErrInvalidHName, fmt.Sprintf("%q", s))
	}

	var v uint32
	for _, b := range raw {
		v = v<<8 | uint32(b)
	}
	return HName(v), nil
}

// MarshalText implements encoding.TextMarshaler.
func (h HName) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HName) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
