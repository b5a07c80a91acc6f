// SPDX-License-Identifier: MPL-2.0

package args

import (
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ArgFilePrefix marks a token naming a file of further arguments.
const ArgFilePrefix = "@"

// ExpandArgFiles replaces every "@path" token with the arguments read from
// path. The file is split with POSIX shell quoting rules, so quoted values may
// contain spaces and "$VAR" references expand from the process environment.
// Expansion is not recursive.
func ExpandArgFiles(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		path, ok := strings.CutPrefix(tok, ArgFilePrefix)
		if !ok || path == "" {
			out = append(out, tok)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, NewArgumentError("Unable to read argument file '%s': %v", path, err)
		}
		fields, err := shell.Fields(string(data), nil)
		if err != nil {
			return nil, NewArgumentError("Unable to parse argument file '%s': %v", path, err)
		}
		out = append(out, fields...)
	}
	return out, nil
}
