// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/stingkit/stingkit/cmd/stingkit"

func main() {
	cmd.Execute()
}
