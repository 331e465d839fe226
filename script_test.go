package main

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// End-to-end scripts live in testdata/scripts.yaml so new cases don't need a
// recompile. Each case runs the whole pipeline and checks either the exact
// stdout or a fragment of the runtime error.
type scriptCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

func loadScriptCases(t *testing.T) []scriptCase {
	t.Helper()

	data, err := os.ReadFile("testdata/scripts.yaml")
	if err != nil {
		t.Fatalf("reading script manifest: %v", err)
	}

	var cases []scriptCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding script manifest: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("script manifest is empty")
	}
	return cases
}

func TestScripts(t *testing.T) {
	for _, tc := range loadScriptCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Output != "" && tc.Error != "" {
				t.Fatalf("case %q sets both output and error", tc.Name)
			}

			out, err := runSource(t, tc.Source)

			if tc.Error != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got none\noutput: %q", tc.Error, out)
				}
				if !strings.Contains(err.Error(), tc.Error) {
					t.Fatalf("error %q does not contain %q", err, tc.Error)
				}
				return
			}

			if err != nil {
				t.Fatalf("runtime error: %v", err)
			}
			if out != tc.Output {
				t.Fatalf("output mismatch\ngot:  %q\nwant: %q", out, tc.Output)
			}
		})
	}
}
