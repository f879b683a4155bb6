// Package artifact defines the value types of the signing pipeline: device
// allow-list, artifact identities, signing results and published URLs.
//
// An Identity is the single handle for a signed package: it is the on-disk
// filename in both the working and public directories and the final path
// segment of every URL handed back to the client. There is deliberately no
// separate opaque ID and no metadata store behind it.
package artifact
