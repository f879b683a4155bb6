package ota

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkropachev/sign-station/internal/apperrors"
)

const (
	iphoneSafariUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	desktopChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// TestDecideValidation rejects missing parameters before any classification.
func TestDecideValidation(t *testing.T) {
	t.Parallel()

	for _, params := range [][3]string{
		{"", "1.0", "a.ipa"},
		{"com.x", "", "a.ipa"},
		{"com.x", "1.0", ""},
	} {
		_, err := Decide("https://host", params[0], params[1], params[2], iphoneSafariUA)
		require.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

// TestDecideNativeDefault sends native clients straight to the installer scheme.
func TestDecideNativeDefault(t *testing.T) {
	t.Parallel()

	for _, ua := range []string{
		iphoneSafariUA,
		"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)",
		"something iPod something",
		"AppleWatch/10.0",
		"Mozilla/5.0 (Apple Vision Pro)",
	} {
		decision, err := Decide("https://host", "com.x", "1.0", "a.ipa", ua)
		require.NoError(t, err)
		require.Equal(t, OutcomeRedirect, decision.Kind)
		require.Equal(t,
			"itms-services://?action=download-manifest&url=https://host/ota/com.x/1.0/a.ipa",
			decision.TargetURL)
	}
}

// TestDecideAlternateBrowsers rewrites the target for every recognized
// third-party engine so the system browser handles the scheme.
func TestDecideAlternateBrowsers(t *testing.T) {
	t.Parallel()

	for _, signature := range []string{"CriOS", "FxiOS", "EdgiOS", "OPiOS", "YaBrowser", "DuckDuckGo"} {
		ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " + signature + "/120.0"

		decision, err := Decide("https://host", "com.x", "1.0", "a.ipa", ua)
		require.NoError(t, err)
		require.Equal(t, OutcomeRewrittenRedirect, decision.Kind)
		require.Equal(t, "x-safari-https://host/install/com.x/1.0/a.ipa", decision.TargetURL)
	}
}

// TestDecideNonMobile serves the fallback page to desktop clients, including
// an alternate-browser signature without a native device marker.
func TestDecideNonMobile(t *testing.T) {
	t.Parallel()

	for _, ua := range []string{desktopChromeUA, "curl/8.0", "", "Mozilla/5.0 (X11; Linux) CriOS/1.0"} {
		decision, err := Decide("https://host", "com.x", "1.0", "a.ipa", ua)
		require.NoError(t, err)
		require.Equal(t, OutcomeFallbackPage, decision.Kind)
		require.Equal(t, "https://host/install/com.x/1.0/a.ipa", decision.InstallURL)
	}
}

// TestDecideEncodesSegments percent-encodes all three path segments.
func TestDecideEncodesSegments(t *testing.T) {
	t.Parallel()

	decision, err := Decide("https://host", "com.x app", "1.0+beta/2", "a b.ipa", iphoneSafariUA)
	require.NoError(t, err)
	require.Equal(t,
		"itms-services://?action=download-manifest&url=https://host/ota/com.x%20app/1.0%2Bbeta%2F2/a%20b.ipa",
		decision.TargetURL)
}

// TestEncodeSegment checks the unreserved set stays raw and everything else
// is percent-encoded with upper-case hex.
func TestEncodeSegment(t *testing.T) {
	t.Parallel()

	require.Equal(t, "AZaz09-._~", EncodeSegment("AZaz09-._~"))
	require.Equal(t, "a%20b", EncodeSegment("a b"))
	require.Equal(t, "a%2Fb", EncodeSegment("a/b"))
	require.Equal(t, "%25", EncodeSegment("%"))
	require.Equal(t, "%D0%AF", EncodeSegment("Я"))
}
