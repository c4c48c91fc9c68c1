// Package logging constructs the application's slog loggers and provides
// typed attribute helpers shared by every component. Console output goes to
// stderr so tables and prompts on stdout stay machine readable.
package logging
