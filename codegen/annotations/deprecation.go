package annotations

import "strings"

const deprecatedPrefix = "Deprecated:"

// Deprecation returns the "Deprecated:" paragraph of a doc comment, following the go doc convention.
// The paragraph starts with a line beginning with "Deprecated:" and ends at the next blank line or annotation.
// Leading and trailing white space of each line is removed, lines are joined with "\n".
func Deprecation(comments []string) (string, bool) {
	var lines []string
	found := false
	for _, c := range comments {
		line := strings.TrimSpace(c)
		if !found {
			if strings.HasPrefix(line, deprecatedPrefix) {
				found = true
				lines = append(lines, line)
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "@") {
			break
		}
		lines = append(lines, line)
	}
	if !found {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}
