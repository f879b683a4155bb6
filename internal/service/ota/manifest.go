package ota

import (
	"fmt"
	"strings"
)

// ManifestContentType is the media type of the generated manifest document.
const ManifestContentType = "application/xml"

// manifestTemplate is the fixed OTA manifest shape iOS expects: one item with
// one software-package asset plus identification metadata. Interpolated
// values are already escaped.
const manifestTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN"
"http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
<key>items</key>
<array>
<dict>
<key>assets</key>
<array>
<dict>
<key>kind</key>
<string>software-package</string>
<key>url</key>
<string>%s</string>
</dict>
</array>
<key>metadata</key>
<dict>
<key>bundle-identifier</key>
<string>%s</string>
<key>bundle-version</key>
<string>%s</string>
<key>kind</key>
<string>software</string>
<key>title</key>
<string>%s</string>
</dict>
</dict>
</array>
</dict>
</plist>`

// Manifest renders the OTA manifest for a downloadable package. The title
// shown in the installation prompt is the bundle identifier. Pure text
// templating; cannot fail for valid inputs.
func Manifest(downloadURL, bundleID, bundleVersion string) string {
	return fmt.Sprintf(manifestTemplate,
		escapeXML(downloadURL),
		escapeXML(bundleID),
		escapeXML(bundleVersion),
		escapeXML(bundleID))
}

// escapeXML substitutes the five reserved markup characters with their named
// entities, character by character. Input is always raw text, never
// pre-escaped markup.
func escapeXML(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		case '\'':
			b.WriteString("&apos;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
