// SPDX-License-Identifier: MPL-2.0

// Package issue provides errors that tell the user what was being attempted,
// on which resource, and what to try next.
package issue
