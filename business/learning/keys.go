package learning

import (
	"sort"
	"strings"
)

// CombinationKey canonicalizes the services used in an event: trimmed,
// deduplicated, sorted, comma-joined. Together with the event type it keys
// the service_patterns table.
func CombinationKey(services []string) string {
	seen := make(map[string]struct{}, len(services))
	out := make([]string, 0, len(services))

	for _, s := range services {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	sort.Strings(out)
	return strings.Join(out, ",")
}
