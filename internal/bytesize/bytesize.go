// Package bytesize parses human-readable sizes for configuration fields
// like upload limits: "64Mi", "100MB", or a plain byte count.
package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteSize is a size in bytes. It unmarshals from strings with binary
// (Ki/Mi/Gi, x1024) or decimal (K/M/G, x1000) suffixes, or bare numbers.
type ByteSize int64

const (
	B  ByteSize = 1
	KB ByteSize = 1000
	MB ByteSize = 1000 * KB
	GB ByteSize = 1000 * MB

	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
)

var suffixes = map[string]ByteSize{
	"":    B,
	"b":   B,
	"k":   KB,
	"kb":  KB,
	"m":   MB,
	"mb":  MB,
	"g":   GB,
	"gb":  GB,
	"ki":  KiB,
	"kib": KiB,
	"mi":  MiB,
	"mib": MiB,
	"gi":  GiB,
	"gib": GiB,
}

// Parse converts a human-readable size string into a ByteSize.
func Parse(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := len(s)
	for split > 0 && !isDigit(s[split-1]) {
		split--
	}
	numStr, unit := s[:split], strings.ToLower(strings.TrimSpace(s[split:]))

	mult, ok := suffixes[unit]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit %q", s[split:])
	}

	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil || num < 0 {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}
	return ByteSize(num) * mult, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// UnmarshalText lets ByteSize fields decode from config strings.
func (b *ByteSize) UnmarshalText(text []byte) error {
	size, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = size
	return nil
}

// MarshalYAML renders the size back in its human-readable form.
func (b ByteSize) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// String returns a human-readable representation of the byte size.
func (b ByteSize) String() string {
	switch {
	case b >= GiB && b%GiB == 0:
		return fmt.Sprintf("%dGi", b/GiB)
	case b >= MiB && b%MiB == 0:
		return fmt.Sprintf("%dMi", b/MiB)
	case b >= KiB && b%KiB == 0:
		return fmt.Sprintf("%dKi", b/KiB)
	default:
		return fmt.Sprintf("%d", int64(b))
	}
}

// Int64 returns the size as an int64 for APIs like http.MaxBytesReader.
func (b ByteSize) Int64() int64 {
	return int64(b)
}
