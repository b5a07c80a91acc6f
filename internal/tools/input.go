// SPDX-License-Identifier: MPL-2.0

package tools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/stingkit/stingkit/internal/report"
)

const (
	// StdinPath reads the input from standard input.
	StdinPath = "-"

	// MaxLineSize is the longest line the line-oriented analyses accept.
	MaxLineSize = 16 << 20
)

// openInput opens path for reading. A file that cannot be opened is a user
// fault: the path came from the command line.
func openInput(path string) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, report.WrapUserError(err, "Couldn't read input file "+path)
	}
	return f, nil
}

func newLineScanner(in io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
	return sc
}

// scanError reports a line over MaxLineSize as a problem with the input
// rather than with the tool.
func scanError(err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return report.WrapUserError(err, fmt.Sprintf("Input has a line longer than %d bytes", MaxLineSize))
	}
	return err
}
