package lint

import (
	"fmt"
	"strings"
)

// Finding is one diagnostic reported by the lint tool.
type Finding struct {
	Line    string
	Message string
}

// Label is the human-readable key a finding is stored under.
func (f Finding) Label() string {
	return "line " + f.Line
}

// ParseOutput parses the tool's line-oriented stdout. Each line has the
// form "<path>:<line>:<col>: <message>"; splitting stops after the column
// field so messages that themselves contain colons stay intact. Output
// order is preserved and duplicate lines are kept as separate findings.
func ParseOutput(out string) ([]Finding, error) {
	var findings []Finding

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 4 {
			return nil, fmt.Errorf("malformed lint output line: %q", line)
		}

		findings = append(findings, Finding{
			Line:    strings.TrimSpace(parts[1]),
			Message: strings.TrimSpace(parts[3]),
		})
	}

	return findings, nil
}
