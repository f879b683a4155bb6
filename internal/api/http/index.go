package http

import "net/http"

// indexPage is the minimal upload form for manual use. Real clients post to
// /sign directly.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sign station</title>
</head>
<body>
<h1>Sign station</h1>
<form action="/sign" method="post" enctype="multipart/form-data">
<label>Device UDID <input type="text" name="udid" required></label>
<label>IPA file <input type="file" name="file" accept=".ipa" required></label>
<button type="submit">Sign</button>
</form>
</body>
</html>
`

// handleIndex serves the upload page.
func (h *handler) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(indexPage))
}
