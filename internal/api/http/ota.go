package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkropachev/sign-station/internal/logger"
	"github.com/mkropachev/sign-station/internal/service/ota"
)

// handleManifest serves the OTA manifest for a published artifact. The
// device fetches this document from the itms-services target and then
// downloads the package from the URL inside it.
func (h *handler) handleManifest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	downloadURL := fmt.Sprintf("%s/public/%s",
		originFromContext(r.Context()),
		ota.EncodeSegment(vars["artifactId"]))

	manifest := ota.Manifest(downloadURL, vars["bundleId"], vars["bundleVersion"])

	w.Header().Set("Content-Type", ota.ManifestContentType)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(manifest)); err != nil {
		logger.Errorf(r.Context(), "Failed to write manifest: %v", err)
	}
}

// handleInstall classifies the requesting client and responds with a
// redirect, a scheme-rewritten redirect or the QR fallback page.
func (h *handler) handleInstall(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	decision, err := ota.Decide(
		originFromContext(r.Context()),
		vars["bundleId"],
		vars["bundleVersion"],
		vars["artifactId"],
		r.UserAgent())
	if err != nil {
		writeError(w, err)

		return
	}

	if decision.Kind == ota.OutcomeFallbackPage {
		page, pageErr := ota.FallbackPage(decision.InstallURL)
		if pageErr != nil {
			logger.Errorf(r.Context(), "Failed to render fallback page: %v", pageErr)
			writeError(w, pageErr)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))

		return
	}

	http.Redirect(w, r, decision.TargetURL, http.StatusTemporaryRedirect)
}
