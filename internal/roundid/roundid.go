// Package roundid generates sortable round identifiers: a UUIDv7 encoded as
// 26 characters of Crockford base32.
package roundid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32 alphabet, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded round ID
const Length = 26

// RandSource lets tests make the random part of an ID deterministic
type RandSource interface {
	IntN(n int) int
}

// Generator creates round IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil RandSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	return &Generator{clock: clock, rand: rand}
}

// Generate creates a new round ID
func (g *Generator) Generate() string {
	return encode(g.uuidv7())
}

func (g *Generator) uuidv7() [16]byte {
	var uuid [16]byte

	// 48-bit big-endian millisecond timestamp
	ms := uint64(g.clock.Now("roundid").UnixMilli())
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], ms)
	copy(uuid[0:6], ts[2:8])

	if g.rand != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("roundid: failed to read random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10
	return uuid
}

// encode writes the 128 bits as 26 base32 digits, most significant first.
// The leading digit only carries 3 bits so it is always 0-7.
func encode(uuid [16]byte) string {
	hi := binary.BigEndian.Uint64(uuid[0:8])
	lo := binary.BigEndian.Uint64(uuid[8:16])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// validate checks that id looks like a round ID
func validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("round ID has invalid character %q at position %d", c, i)
		}
	}
	return nil
}
