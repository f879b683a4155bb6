package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mkropachev/sign-station/internal/domain/artifact"
)

// Pipeline abstracts the signing operation the transport layer depends on.
type Pipeline interface {
	SignUpload(ctx context.Context, origin string, upload *artifact.UploadRequest) (*artifact.PublishedURLs, error)
}

// handler carries the dependencies of the HTTP endpoints.
type handler struct {
	// pipeline is the signing business logic.
	pipeline Pipeline
}

// NewHandler assembles the HTTP API over the pipeline and the public
// artifact directory.
func NewHandler(pipeline Pipeline, publicDir string) http.Handler {
	h := &handler{
		pipeline: pipeline,
	}

	router := mux.NewRouter()
	router.Use(baseOriginMiddleware)

	router.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/sign", h.handleSign).Methods(http.MethodPost)
	router.HandleFunc("/ota/{bundleId}/{bundleVersion}/{artifactId}", h.handleManifest).
		Methods(http.MethodGet)
	router.HandleFunc("/install/{bundleId}/{bundleVersion}/{artifactId}", h.handleInstall).
		Methods(http.MethodGet)
	router.PathPrefix("/public/").
		Handler(http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir)))).
		Methods(http.MethodGet)

	// CORS wraps the router so preflight OPTIONS requests are answered before
	// mux applies its method matching.
	return cors.AllowAll().Handler(router)
}
