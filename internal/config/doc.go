// Package config loads the service configuration from the environment and
// validates it before anything else starts.
//
// All settings are read once at startup and are read-only afterwards; the
// resulting Config is passed explicitly to every component instead of living
// in ambient globals. A missing required variable fails the process fast.
package config
