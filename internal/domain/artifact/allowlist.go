package artifact

import "errors"

// Allowlist is the immutable set of device identifiers permitted to request
// signing. All entries are normalized at construction, so lookups are
// case- and whitespace-insensitive by construction.
type Allowlist struct {
	// udids holds the normalized identifiers.
	udids map[string]struct{}
}

// ErrEmptyAllowlist is returned when no usable identifier survives normalization.
var ErrEmptyAllowlist = errors.New("no valid device identifiers provided")

// NewAllowlist builds an allow-list from raw identifiers, normalizing each one
// and dropping empties. At least one entry must remain.
func NewAllowlist(udids []string) (*Allowlist, error) {
	set := make(map[string]struct{}, len(udids))

	for _, udid := range udids {
		normalized := NormalizeUDID(udid)
		if normalized == "" {
			continue
		}

		set[normalized] = struct{}{}
	}

	if len(set) == 0 {
		return nil, ErrEmptyAllowlist
	}

	return &Allowlist{udids: set}, nil
}

// Contains reports whether the identifier is authorized. The input is
// normalized before lookup, so arbitrary casing and whitespace are accepted.
func (a *Allowlist) Contains(udid string) bool {
	_, ok := a.udids[NormalizeUDID(udid)]

	return ok
}

// Len returns the number of authorized identifiers.
func (a *Allowlist) Len() int {
	return len(a.udids)
}
