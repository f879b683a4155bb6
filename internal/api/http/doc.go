// Package http exposes the signing pipeline over HTTP: the multipart upload
// endpoint, the OTA manifest and install endpoints, static artifact downloads
// and the minimal upload page. Routing is gorilla/mux with a permissive CORS
// layer; every request carries its inferred base origin in the context.
package http
