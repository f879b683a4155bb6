// Package signer models the external code-signing tool as an injectable
// capability. The service depends on the Signer interface only, so tests can
// substitute a fake producing canned output instead of spawning a process.
//
// The real implementation shells out to zsign and decides success solely by
// the tool's output text, never by its exit code: zsign has been observed to
// exit zero on failures and non-zero on successes, so the "Signed OK!"
// marker is the contract.
package signer
