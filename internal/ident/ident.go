// Package ident generates short, URL-safe identifiers that are also valid
// XML names, for assigning xml:id values to elements.
package ident

import (
	"encoding/base32"
	"strings"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// enc is unpadded base32; lowercased output keeps identifiers readable and
// safe in URLs and XML names.
var enc = base32.StdEncoding.WithPadding(base32.NoPadding)

// length is the number of encoded characters kept after the prefix.
const length = 12

// New returns a fresh random identifier. The leading letter guarantees a
// valid XML name start regardless of the encoded bytes.
func New() string {
	u := uuid.New()
	return "e" + encode(u[:])
}

// FromSeed returns a deterministic identifier: the same seed always yields
// the same identifier.
func FromSeed(seed string) string {
	sum := blake3.Sum256([]byte(seed))
	return "e" + encode(sum[:])
}

func encode(b []byte) string {
	s := strings.ToLower(enc.EncodeToString(b))
	if len(s) > length {
		s = s[:length]
	}
	return s
}
