// Package matchid generates sortable match identifiers: a UUIDv7 written as
// 26 characters of Crockford base32, the same shape as a TypeID suffix.
package matchid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	// Length is the number of characters in an encoded id
	Length = 26
)

// Generate creates a new match id.
func Generate() string {
	return encode(uuid.Must(uuid.NewV7()))
}

// GenerateFrom creates a match id whose random bits are read from r. The
// timestamp part still comes from the clock.
func GenerateFrom(r io.Reader) (string, error) {
	id, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to generate match id: %w", err)
	}
	return encode(id), nil
}

// encode writes the 128 bits of id, preceded by two zero bits, five bits
// per character.
func encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes a match id back into its UUID.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if len(s) != Length {
		return id, fmt.Errorf("match ID must be exactly %d characters, got %d", Length, len(s))
	}
	if s[0] > '7' {
		return id, fmt.Errorf("match ID first character must be 0-7, got %c", s[0])
	}

	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			if bit >= 0 && v&(0x10>>b) != 0 {
				id[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s is a well formed match id.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}
