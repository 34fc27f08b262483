package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ExpandRange expands a rule-number range specification into individual values.
// Supports formats like:
//   - "10-13" -> [10, 11, 12, 13]
//   - "10,30,50" -> [10, 30, 50]
//   - "10-12,20" -> [10, 11, 12, 20]
//
// Results are sorted ascending with duplicates removed.
func ExpandRange(spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	var result []int

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid range start %q: %w", lo, err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid range end %q: %w", hi, err)
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %q: end before start", part)
			}
			for i := start; i <= end; i++ {
				if !seen[i] {
					seen[i] = true
					result = append(result, i)
				}
			}
			continue
		}

		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}

	sort.Ints(result)
	return result, nil
}
