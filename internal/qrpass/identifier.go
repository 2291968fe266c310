package qrpass

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const prefixMaxLen = 10

// GenerateID builds a pass identifier from the session name plus a random
// hex suffix, e.g. "DINNERDAY1-3f9a07c2". The prefix is the session name
// upper-cased, stripped of spaces and hyphens and truncated to 10 characters;
// the suffix carries 32 bits of randomness, which makes collisions negligible
// for event-sized populations.
func GenerateID(sessionName string) string {
	clean := strings.ToUpper(sessionName)
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "-", "")
	if len(clean) > prefixMaxLen {
		clean = clean[:prefixMaxLen]
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%s", clean, suffix)
}
