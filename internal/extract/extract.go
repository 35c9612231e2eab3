package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Extractor pulls hostnames out of a page with a single-group regexp.
type Extractor struct {
	re *regexp.Regexp
}

func New(pattern string) (*Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid host pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("host pattern must have exactly one capture group, has %d", re.NumSubexp())
	}
	return &Extractor{re: re}, nil
}

// Extract returns the captured value of every non-overlapping match in
// document order, or nil when nothing matched.
func (e *Extractor) Extract(text string) []string {
	matches := e.re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	hosts := make([]string, 0, len(matches))
	for _, m := range matches {
		hosts = append(hosts, m[1])
	}
	return hosts
}

// ParseList reads a plain host list: one host per line, blank lines and
// "#" comments skipped. A leading "- " (YAML list style) is stripped and only
// the first whitespace-separated field is kept.
func ParseList(text string) []string {
	var hosts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "- ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		hosts = append(hosts, fields[0])
	}
	return hosts
}
