// Package store implements the filesystem layout of the signing pipeline:
// a working directory for staged uploads and a public directory for
// published artifacts, plus the periodic retention sweep over the latter.
//
// There is no index and no database; the artifact identity is the filename,
// and listing or cleanup operate directly on directory entries.
package store
