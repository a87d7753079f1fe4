package harness

import "strings"

// fallbackSteps is assumed when the framework output carries no step
// markers at all, matching the typical short-episode length observed in
// framework logs.
const fallbackSteps = 5

// ParseSuccess reports whether the framework output indicates a completed
// task. The frameworks under test print either a "Success: True" line or a
// check mark.
func ParseSuccess(output string) bool {
	return strings.Contains(output, "Success: True") || strings.Contains(output, "✅")
}

// ParseSteps counts executed steps from framework output. Primary signal is
// lines mentioning "Step"; if none are found it falls back to counting
// action records, then to fallbackSteps.
func ParseSteps(output string) int {
	steps := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Step") {
			steps++
		}
	}
	if steps > 0 {
		return steps
	}
	if n := strings.Count(output, "action_type"); n > 0 {
		return n
	}
	return fallbackSteps
}
