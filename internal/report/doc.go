// SPDX-License-Identifier: MPL-2.0

// Package report classifies terminal faults and writes the matching banner.
//
// A fault is a user fault when it (or anything it wraps) reports
// UserFault() == true and carries a message; the banner then tells the user
// to fix their input. Everything else is an internal fault, reported with a
// stack trace and a request to file an issue. Both exit with status 1.
package report
