// Package ota implements the over-the-air delivery surface: the property-list
// manifest telling iOS where to download a package, the user-agent driven
// install decision (redirect, scheme-rewritten redirect or QR fallback page)
// and the fallback page rendering itself.
package ota
