// SPDX-License-Identifier: MPL-2.0

// Package startup runs a tool from a raw argument vector: it resolves the
// command line, derives the logging setup from the universal arguments,
// dispatches to the tool and reports any fault. Run returns the exit code;
// terminating the process is left to main.
package startup
