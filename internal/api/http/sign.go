package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mkropachev/sign-station/internal/apperrors"
	"github.com/mkropachev/sign-station/internal/domain/artifact"
	"github.com/mkropachev/sign-station/internal/logger"
)

// handleSign ingests the multipart upload and runs the signing pipeline.
func (h *handler) handleSign(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithName(r.Context(), "sign")

	upload, err := readUpload(r)
	if err != nil {
		writeError(w, err)

		return
	}

	urls, err := h.pipeline.SignUpload(ctx, originFromContext(ctx), upload)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &signResponse{
		Message:    "IPA signed successfully.",
		IPAURL:     urls.Download,
		OTAURL:     urls.Manifest,
		InstallURL: urls.Install,
	})
}

// readUpload consumes the multipart body into an UploadRequest. The body is
// read part by part; the archive is buffered because the device identifier
// may arrive after the file part, and the artifact identity needs both
// before anything touches the filesystem. Presence checks are left to the
// pipeline, which orders them against the authorization check.
func readUpload(r *http.Request) (*artifact.UploadRequest, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, apperrors.Validationf("Invalid multipart body: %v", err)
	}

	var (
		upload    artifact.UploadRequest
		fileBytes bytes.Buffer
		hasFile   bool
	)

	for {
		part, partErr := reader.NextPart()
		if errors.Is(partErr, io.EOF) {
			break
		}

		if partErr != nil {
			return nil, apperrors.Validationf("Error reading multipart field: %v", partErr)
		}

		name := part.FormName()
		if name == "" {
			part.Close()

			return nil, apperrors.Validationf("Multipart field without name")
		}

		switch name {
		case "udid":
			var text strings.Builder
			if _, err = io.Copy(&text, part); err != nil {
				part.Close()

				return nil, apperrors.Validationf("Error reading udid field: %v", err)
			}

			upload.UDID = text.String()
		case "file":
			upload.Filename = part.FileName()

			if _, err = io.Copy(&fileBytes, part); err != nil {
				part.Close()

				return nil, apperrors.Validationf("Error reading file field: %v", err)
			}

			hasFile = true
		default:
			// Unknown fields are drained and ignored.
			_, _ = io.Copy(io.Discard, part)
		}

		part.Close()
	}

	if hasFile {
		upload.Contents = bytes.NewReader(fileBytes.Bytes())
	}

	return &upload, nil
}
