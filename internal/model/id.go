package model

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// IDLength is the length of every record identifier.
const IDLength = 24

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns a 24 character hex identifier: 4 bytes of unix seconds
// followed by 8 random bytes, so ids roughly sort by creation time.
func NewID() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	random := uuid.New()
	copy(raw[4:], random[:8])
	return hex.EncodeToString(raw[:])
}

// IsValidID reports whether s has the shape of a record identifier.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
