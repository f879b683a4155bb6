package ota

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestManifestStructure checks the fixed document shape around interpolated values.
func TestManifestStructure(t *testing.T) {
	t.Parallel()

	doc := Manifest("https://host/public/app.ipa", "com.example.app", "3.2.1")

	require.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, doc, "<!DOCTYPE plist PUBLIC")
	require.Contains(t, doc, "<string>software-package</string>")
	require.Contains(t, doc, "<string>software</string>")
	require.Contains(t, doc, "<string>https://host/public/app.ipa</string>")
	require.Contains(t, doc, "<key>bundle-identifier</key>\n<string>com.example.app</string>")
	require.Contains(t, doc, "<key>bundle-version</key>\n<string>3.2.1</string>")

	// Title mirrors the bundle identifier.
	require.Contains(t, doc, "<key>title</key>\n<string>com.example.app</string>")
}

// TestManifestEscaping ensures reserved characters only appear as named
// entities and safe input is left untouched.
func TestManifestEscaping(t *testing.T) {
	t.Parallel()

	doc := Manifest("https://host/a?b=<1>&c='d'", `com."evil"<id>`, "1&2")

	require.Contains(t, doc, "<string>https://host/a?b=&lt;1&gt;&amp;c=&apos;d&apos;</string>")
	require.Contains(t, doc, "<string>com.&quot;evil&quot;&lt;id&gt;</string>")
	require.Contains(t, doc, "<string>1&amp;2</string>")

	// No raw reserved characters survive inside interpolated values.
	require.NotContains(t, doc, `<string>com."evil"`)
	require.NotContains(t, doc, "<string>1&2</string>")
}

// TestEscapeXML covers the escaper directly, including the no-double-escape property.
func TestEscapeXML(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"plain":          "plain",
		"a<b":            "a&lt;b",
		"a>b":            "a&gt;b",
		"a&b":            "a&amp;b",
		`a"b`:            "a&quot;b",
		"a'b":            "a&apos;b",
		"<>&'\"":         "&lt;&gt;&amp;&apos;&quot;",
		"com.example.ok": "com.example.ok",
	}

	for in, want := range cases {
		require.Equal(t, want, escapeXML(in))
	}

	// Safe input is a fixed point of the escaper.
	safe := "already-safe_1.2.3"
	require.Equal(t, safe, escapeXML(escapeXML(safe)))
}
