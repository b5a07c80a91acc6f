// SPDX-License-Identifier: MPL-2.0

package args

import "time"

type sampleArgs struct {
	Input   string
	Threads int
	Ratio   float64
	Timeout time.Duration
	Verbose bool
	Tags    []string
	Mode    string
	Plain   bool
	Fancy   bool
}

func (a *sampleArgs) Arguments() []*Declaration {
	return []*Declaration{
		String(&a.Input, Spec{FullName: "input", ShortName: "I", Doc: "input file", Required: true}),
		Int(&a.Threads, Spec{FullName: "threads", ShortName: "nt", Doc: "worker count"}),
		Float(&a.Ratio, Spec{FullName: "ratio", Doc: "sampling ratio"}),
		Duration(&a.Timeout, Spec{FullName: "timeout", Doc: "timeout"}),
		Bool(&a.Verbose, Spec{FullName: "verbose", ShortName: "v", Doc: "verbose"}),
		Strings(&a.Tags, Spec{FullName: "tag", Doc: "tags"}),
		Enum(&a.Mode, []string{"fast", "Thorough"}, Spec{FullName: "mode", Doc: "mode"}),
		Bool(&a.Plain, Spec{FullName: "plain", ExclusiveOf: []string{"fancy"}}),
		Bool(&a.Fancy, Spec{FullName: "fancy"}),
	}
}

func newSampleStore(t interface{ Fatalf(string, ...any) }, opts ...Option) (*Store, *sampleArgs) {
	a := &sampleArgs{Threads: 1, Mode: "fast"}
	s := NewStore(opts...)
	if err := s.RegisterSource("sample", a); err != nil {
		t.Fatalf("RegisterSource() error = %v", err)
	}
	return s, a
}
