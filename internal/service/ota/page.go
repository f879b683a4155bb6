package ota

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the rendered QR code edge length in pixels.
const qrSize = 200

// fallbackPageTemplate is the page served to clients that cannot open the
// installer scheme. The QR code is rendered server-side and inlined, so the
// page works without any external assets.
var fallbackPageTemplate = template.Must(template.New("fallback").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Install signed app</title>
</head>
<body>
<strong>Scan this QR code with the iOS Camera app to install the IPA</strong>
<div id="qrCode">
<img src="{{.QRCode}}" width="{{.Size}}" height="{{.Size}}" alt="Install QR code">
</div>
<p><a href="{{.InstallURL}}">{{.InstallURL}}</a></p>
</body>
</html>
`))

// FallbackPage renders the QR page for the given install URL.
func FallbackPage(installURL string) (string, error) {
	png, err := qrcode.Encode(installURL, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode QR code: %w", err)
	}

	var page strings.Builder

	// The data URI is typed so the template engine does not percent-escape
	// the base64 payload in the src attribute.
	err = fallbackPageTemplate.Execute(&page, struct {
		QRCode     template.URL
		InstallURL string
		Size       int
	}{
		QRCode:     template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		InstallURL: installURL,
		Size:       qrSize,
	})
	if err != nil {
		return "", fmt.Errorf("render fallback page: %w", err)
	}

	return page.String(), nil
}
