// SPDX-License-Identifier: MPL-2.0

// Package help renders the argument surface of a tool and the header block
// logged before a tool runs.
package help
