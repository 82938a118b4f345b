package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFixture reads a test fixture from disk.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// GoldenCase pairs a markdown input with its expected output and optional
// stats file, all sharing one base name inside a directory.
type GoldenCase struct {
	Name   string
	Input  string
	Output string
	Stats  string
}

// GoldenCases lists every <name>.input.md under dir, sorted by name. Stats is
// empty when <name>.stats.json does not exist.
func GoldenCases(dir string) ([]GoldenCase, error) {
	inputs, err := filepath.Glob(filepath.Join(dir, "*.input.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(inputs)

	cases := make([]GoldenCase, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".input.md")
		tc := GoldenCase{
			Name:   name,
			Input:  input,
			Output: filepath.Join(dir, name+".golden.md"),
		}
		if stats := filepath.Join(dir, name+".stats.json"); fileExists(stats) {
			tc.Stats = stats
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
