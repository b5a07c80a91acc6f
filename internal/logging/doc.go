// SPDX-License-Identifier: MPL-2.0

// Package logging wraps charmbracelet/log with the knobs the startup sequence
// needs: a level chosen from a fixed vocabulary, a compact or verbose record
// pattern, an optional file sink next to the console sink, and a quiet switch
// that detaches the console.
package logging
