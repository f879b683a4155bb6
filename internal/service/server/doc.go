// Package server hosts the signing pipeline service (ingest, sign, publish)
// and the process wiring that runs it behind the HTTP API together with the
// retention sweeper.
package server
