// Package log is a small wrapper around the standard library logger that
// gives every service its own named logger.
//
// Lines carry a `[name>]` prefix after the level, for example:
//
//	2025/01/02 15:04:05.000000 INFO [api>] serving 42 hooks
//
// Debug output is off by default and can be enabled for everything
// (SetGlobalDebug, wired to the --debug flag) or per service
// (EnableDebugFor). SetOutput redirects all loggers at once; the terminal
// browser uses it to keep log lines out of the UI, and tests use it to
// capture output in a bytes.Buffer.
//
// The package name collides with the standard library "log". Alias one of
// them when both are needed.
package log
