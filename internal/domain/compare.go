package domain

import "strings"

// NormalizeOutput prepares program output for comparison: line endings become
// \n, trailing whitespace is stripped per line, trailing blank lines and outer
// whitespace are dropped.
func NormalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[:end], "\n"))
}

// CompareOutputs reports whether expected and actual output match after
// normalization. This is the default comparison mode.
func CompareOutputs(expected, actual string) bool {
	return NormalizeOutput(expected) == NormalizeOutput(actual)
}

// CompareOutputsExact compares outputs byte for byte. Not the default.
func CompareOutputsExact(expected, actual string) bool {
	return expected == actual
}
