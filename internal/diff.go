package internal

import (
	"fmt"
	"os"
	"strings"
)

// Except returns the distinct values of first that do not occur in second,
// in the order they first appear in first.
func Except(first, second []string) []string {
	exclude := make(map[string]struct{}, len(second)+len(first))
	for _, v := range second {
		exclude[v] = struct{}{}
	}

	result := make([]string, 0, len(first))
	for _, v := range first {
		if _, seen := exclude[v]; seen {
			continue
		}
		exclude[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// WriteLines writes one value per line, each terminated by a newline.
// An empty list produces an empty file.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FormatDiffSummary returns a human-readable diff summary string.
func FormatDiffSummary(remaining, firstTotal int) string {
	if remaining == 0 {
		return "diff: every value of the first column appears in the second"
	}
	noun := "values"
	if remaining == 1 {
		noun = "value"
	}
	return fmt.Sprintf("diff: %d %s only in the first column (of %d read)", remaining, noun, firstTotal)
}
