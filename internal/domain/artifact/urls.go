package artifact

import "fmt"

// SignResult carries the metadata extracted from the signer's output.
// Both fields are mandatory; the signer package never returns a partial result.
type SignResult struct {
	// BundleID is the application's unique namespace string.
	BundleID string
	// BundleVersion is the application's release version.
	BundleVersion string
}

// PublishedURLs are the three public locations of a signed artifact. They are
// computed from the request origin on demand and never stored.
type PublishedURLs struct {
	// Download points at the raw signed package.
	Download string
	// Manifest points at the OTA manifest document for the package.
	Manifest string
	// Install points at the human-facing install page.
	Install string
}

// BuildURLs composes the published URLs for an identity from a base origin
// (scheme://host) and a completed sign result. Pure string composition: the
// identity is URL-safe by construction and the bundle fields are encoded
// later by consumers that place them in paths.
func BuildURLs(origin string, res *SignResult, id Identity) *PublishedURLs {
	return &PublishedURLs{
		Download: fmt.Sprintf("%s/public/%s", origin, id),
		Manifest: fmt.Sprintf("%s/ota/%s/%s/%s", origin, res.BundleID, res.BundleVersion, id),
		Install:  fmt.Sprintf("%s/install/%s/%s/%s", origin, res.BundleID, res.BundleVersion, id),
	}
}
