// SPDX-License-Identifier: MPL-2.0

// Package args holds the argument store shared by every stingkit tool.
//
// A tool describes its command-line surface as one or more named sources.
// Each source returns a list of declarations built with the typed binders in
// this package (String, Bool, Int, Float, Duration, Strings, Enum); every
// declaration carries a pointer to the field it populates, so loading never
// inspects the target struct at runtime.
//
// The store tokenizes the raw argument vector against the declarations known
// at the time of the call. Tokens that match nothing are kept as unmatched
// rather than rejected, so a tool whose surface grows after the first parse
// can parse again once its extra sources are registered. Validation runs an
// explicit RuleSet, which lets callers defer checks that depend on the final
// declaration set.
package args
