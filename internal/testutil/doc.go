// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by tests across the module:
// environment variable management (MustSetenv, MustUnsetenv, SetHomeDir),
// file fixtures (WriteFile) and a controllable FakeClock.
//
// Nothing outside _test.go files imports this package.
package testutil
