// Package logging builds the zap loggers used by the CLI and passed into the
// analysis engine. Info and above omit caller information; debug adds it.
package logging
