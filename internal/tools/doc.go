// SPDX-License-Identifier: MPL-2.0

// Package tools contains the programs shipped with the toolkit. Count has a
// fixed argument set; Analyze picks an analysis with --analysis_type and
// takes that analysis's arguments in a second parsing pass.
package tools
