// Package apperrors defines the request-time error taxonomy shared by the
// signing pipeline and the HTTP layer, plus the mapping to HTTP status codes.
//
// Each Error carries a client-facing message and unwraps to one of the
// sentinel kinds, so errors.Is works across package boundaries while the
// HTTP layer extracts the message without string inspection.
package apperrors
