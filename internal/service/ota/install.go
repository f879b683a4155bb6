package ota

import (
	"fmt"
	"strings"

	"github.com/mkropachev/sign-station/internal/apperrors"
)

// Outcome is the classification of an install request.
type Outcome int

const (
	// OutcomeRedirect sends the device straight to the itms-services target.
	OutcomeRedirect Outcome = iota
	// OutcomeRewrittenRedirect hands the target to the system browser first,
	// because third-party browser engines on iOS do not register the
	// installer scheme themselves.
	OutcomeRewrittenRedirect
	// OutcomeFallbackPage serves the QR page for clients that cannot trigger
	// the install scheme at all.
	OutcomeFallbackPage
)

// Decision is the computed response for one install request.
type Decision struct {
	// Kind selects between redirecting and serving the fallback page.
	Kind Outcome
	// TargetURL is the redirect target for the redirect outcomes.
	TargetURL string
	// InstallURL is the human-facing install URL, encoded for the fallback page.
	InstallURL string
}

var (
	// nativeSignatures identify clients of the native mobile OS families that
	// can open the installer scheme.
	nativeSignatures = []string{"iPhone", "iPad", "iPod", "AppleWatch", "Vision"}

	// alternateBrowserSignatures identify third-party browser engines running
	// on the native mobile OS.
	alternateBrowserSignatures = []string{"CriOS", "FxiOS", "EdgiOS", "OPiOS", "YaBrowser", "DuckDuckGo"}
)

// Decide classifies an install request. First match wins: invalid parameters,
// non-mobile client, alternate mobile browser, then the plain redirect.
func Decide(origin, bundleID, bundleVersion, artifactID, userAgent string) (*Decision, error) {
	if bundleID == "" || bundleVersion == "" || artifactID == "" {
		return nil, apperrors.Validationf("Missing required parameters.")
	}

	// Bundle metadata originates from the signer and is not pre-sanitized the
	// way artifact identities are, so every segment is encoded here.
	var (
		encodedID      = EncodeSegment(bundleID)
		encodedVersion = EncodeSegment(bundleVersion)
		encodedName    = EncodeSegment(artifactID)
	)

	installURL := fmt.Sprintf("%s/install/%s/%s/%s", origin, encodedID, encodedVersion, encodedName)

	if !matchesAny(userAgent, nativeSignatures) {
		return &Decision{
			Kind:       OutcomeFallbackPage,
			InstallURL: installURL,
		}, nil
	}

	manifestURL := fmt.Sprintf("%s/ota/%s/%s/%s", origin, encodedID, encodedVersion, encodedName)
	target := "itms-services://?action=download-manifest&url=" + manifestURL

	if matchesAny(userAgent, alternateBrowserSignatures) {
		// The x-safari prefix makes the system browser open the URL, which in
		// turn can follow the itms-services redirect.
		return &Decision{
			Kind:       OutcomeRewrittenRedirect,
			TargetURL:  "x-safari-" + installURL,
			InstallURL: installURL,
		}, nil
	}

	return &Decision{
		Kind:       OutcomeRedirect,
		TargetURL:  target,
		InstallURL: installURL,
	}, nil
}

// matchesAny reports whether the user agent contains any of the signatures.
func matchesAny(userAgent string, signatures []string) bool {
	for _, signature := range signatures {
		if strings.Contains(userAgent, signature) {
			return true
		}
	}

	return false
}

// EncodeSegment percent-encodes every byte outside the RFC 3986 unreserved
// set. Stricter than net/url path escaping, which keeps sub-delimiters that
// the installer scheme target must not carry raw.
func EncodeSegment(s string) string {
	const upperhex = "0123456789ABCDEF"

	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '-' || c == '.' || c == '_' || c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
		}
	}

	return b.String()
}
