package artifact

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity is the generated name of one signing attempt. It doubles as the
// published filename, so it must stay filesystem- and URL-safe.
type Identity string

// String returns the identity as a plain string.
func (id Identity) String() string {
	return string(id)
}

// NormalizeUDID trims surrounding whitespace and upper-cases a device
// identifier. Allow-list membership is defined over this form.
func NormalizeUDID(udid string) string {
	return strings.ToUpper(strings.TrimSpace(udid))
}

// SanitizeFilename replaces every character that is not alphanumeric, '-' or
// '_' with '_'. The result is used only as one segment of an Identity, never
// for direct path resolution.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// NewIdentity mints a unique artifact identity from a normalized device
// identifier and an already sanitized filename. The epoch-millisecond prefix
// keeps directory listings roughly chronological; the random token makes
// concurrent mints collision-free without any locking.
func NewIdentity(normalizedUDID, sanitizedFilename string) Identity {
	return Identity(fmt.Sprintf("%d_%s_%s_%s.ipa",
		time.Now().UnixMilli(),
		uuid.New(),
		normalizedUDID,
		sanitizedFilename))
}
