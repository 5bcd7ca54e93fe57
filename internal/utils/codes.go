package utils

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Class codes avoid 0/O and 1/I so they survive being read out loud.
const classCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewClassCode generates a short human-shareable class code.
func NewClassCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(classCodeCharset[rand.IntN(len(classCodeCharset))])
	}

	return sb.String()
}

// NewSubmissionCode mints an opaque unique submission identifier.
func NewSubmissionCode() string {
	return "sub_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}
