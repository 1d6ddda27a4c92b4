// Package matchid generates sortable match identifiers. IDs are UUIDv7
// values encoded as 26 characters of Crockford base32, so identifiers
// created later sort lexically after earlier ones.
package matchid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. Tests inject a
// deterministic source; production code passes nil and gets crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generator creates match IDs with configurable randomness.
type Generator struct {
	src RandSource
}

// NewGenerator returns a generator backed by src, or crypto/rand when src
// is nil.
func NewGenerator(src RandSource) *Generator {
	return &Generator{src: src}
}

// New creates a match ID using crypto/rand.
func New() string {
	return NewGenerator(nil).New()
}

// New creates a match ID from the generator's random source.
func (g *Generator) New() string {
	var id [16]byte

	// 48-bit millisecond timestamp, then random tail.
	now := time.Now().UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.src != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.src.Intn(256))
		}
	} else {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("matchid: " + err.Error())
		}
	}

	// UUIDv7 version and variant bits.
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

// encode renders 128 bits as 26 base32 characters, 5 bits per character,
// reading the UUID as a big-endian bit stream.
func encode(id [16]byte) string {
	var sb strings.Builder
	sb.Grow(26)

	for i := 0; i < 26; i++ {
		bit := i * 5
		byteIdx := bit / 8
		shift := bit % 8

		var v uint8
		if shift <= 3 {
			v = (id[byteIdx] >> (3 - shift)) & 0x1f
		} else {
			v = (id[byteIdx] << (shift - 3)) & 0x1f
			if byteIdx+1 < 16 {
				v |= id[byteIdx+1] >> (11 - shift)
			}
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Validate checks that id is a well-formed match ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("match ID must be exactly 26 characters, got %d", len(id))
	}
	// The first character carries only 3 significant bits.
	if id[0] > '7' {
		return fmt.Errorf("match ID first character out of range: %q", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("match ID contains invalid character %q at position %d", id[i], i)
		}
	}
	return nil
}
