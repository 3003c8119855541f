package domain

import (
	"fmt"
	"strings"
)

// List-bearing fields (tags, assignedTo, leadIds) cross the wire as
// comma-joined strings. Joining is lossy if an item contains a comma, so
// items are validated up front instead of silently corrupted.

// JoinList serializes items into the backend's comma-joined wire form.
// Empty items are dropped; surrounding whitespace is trimmed.
func JoinList(items []string) string {
	var kept []string
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, ",")
}

// SplitList parses the backend's comma-joined wire form back into items.
// An empty string yields nil, not a one-element slice.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var items []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

// ValidateListItem rejects values that would not survive a join/split round
// trip through the comma-joined wire encoding.
func ValidateListItem(item string) error {
	if strings.Contains(item, ",") {
		return fmt.Errorf("value %q must not contain a comma", item)
	}
	return nil
}
