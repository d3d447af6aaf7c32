package parse

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// corpusCase is one entry of testdata/corpus.yaml.
type corpusCase struct {
	Name      string   `yaml:"name"`
	Input     string   `yaml:"input"`
	TypeNames []string `yaml:"type_names,omitempty"`
	Expected  string   `yaml:"expected"`
}

type corpusFile struct {
	Tests []corpusCase `yaml:"tests"`
}

func loadCorpus(t testing.TB) []corpusCase {
	data, err := os.ReadFile("testdata/corpus.yaml")
	if err != nil {
		t.Fatalf("failed to read corpus.yaml: %v", err)
	}
	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("failed to parse corpus.yaml: %v", err)
	}
	if len(f.Tests) == 0 {
		t.Fatal("corpus.yaml has no tests")
	}
	return f.Tests
}

func TestCorpus(t *testing.T) {
	for _, tc := range loadCorpus(t) {
		t.Run(tc.Name, func(t *testing.T) {
			tu, err := Parse(tc.Name+".c", []byte(tc.Input), Config{TypeNames: tc.TypeNames})
			if err != nil {
				t.Fatalf("parser errors: %v", err)
			}
			expected := strings.Join(strings.Fields(tc.Expected), " ")
			if got := Sexp(tu); got != expected {
				t.Errorf("got\n%s\nexpected\n%s", got, expected)
			}
		})
	}
}
