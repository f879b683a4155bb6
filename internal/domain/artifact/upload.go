package artifact

import "io"

// UploadRequest is the transient value carried from the multipart body into
// the pipeline: the claimed device identifier, the original filename and the
// archive contents. It lives until the working file is written and is never
// persisted.
type UploadRequest struct {
	// UDID is the claimed device identifier, as sent.
	UDID string
	// Filename is the original filename, as sent.
	Filename string
	// Contents streams the raw archive bytes.
	Contents io.Reader
}
