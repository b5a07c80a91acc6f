// SPDX-License-Identifier: MPL-2.0

// Package protocol sequences argument resolution for one invocation.
//
// A static program is parsed once, checked for --help, strictly validated and
// loaded. A program implementing Expander is first parsed and validated
// leniently (unknown and missing-required arguments are tolerated), loaded
// leniently, then asked for its extra argument sources; the command line is
// parsed again against the complete declaration set before the help check
// and the strict pass.
//
// Resolve never terminates the process. It returns a Result tagged
// OutcomeSuccess, OutcomeHelp or OutcomeFault and leaves printing and exiting
// to the caller.
package protocol
