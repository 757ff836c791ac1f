// Package tags implements the tag-group codec: a lossless round-trip between
// a list of (category, labels) groups and the single string column persisted
// on a log entry, with fallback parsing for two legacy delimiter formats.
package tags

import (
	"encoding/json"
	"strings"
)

// Group pairs a category name with its labels.
type Group struct {
	Category string   `json:"category"`
	Labels   []string `json:"labels"`
}

// Normalize trims every category and label, drops empty ones, merges
// duplicate categories preserving first-seen order, and dedupes labels
// within a category preserving insertion order.
func Normalize(groups []Group) []Group {
	var order []string
	seen := make(map[string]map[string]bool)
	labels := make(map[string][]string)

	for _, g := range groups {
		category := strings.TrimSpace(g.Category)
		if category == "" {
			continue
		}
		if _, ok := seen[category]; !ok {
			seen[category] = make(map[string]bool)
			order = append(order, category)
		}
		for _, l := range g.Labels {
			value := strings.TrimSpace(l)
			if value == "" || seen[category][value] {
				continue
			}
			seen[category][value] = true
			labels[category] = append(labels[category], value)
		}
	}

	out := make([]Group, 0, len(order))
	for _, category := range order {
		ls := labels[category]
		if ls == nil {
			ls = []string{}
		}
		out = append(out, Group{Category: category, Labels: ls})
	}
	return out
}

// Serialize normalizes groups and encodes them as a JSON array.
// Empty input encodes to "[]".
func Serialize(groups []Group) string {
	normalized := Normalize(groups)
	// Marshal cannot fail for this shape.
	b, err := json.Marshal(normalized)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Parse decodes a persisted tag string into groups. Blank input yields an
// empty list. The structured JSON encoding is tried first so migrated data
// is never misinterpreted as legacy; anything that is not a JSON array falls
// back to the legacy delimiter formats. Parse never fails: malformed input
// degrades to an empty or partial group list.
func Parse(raw string) []Group {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []Group{}
	}

	var parsed []Group
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return Normalize(parsed)
	}

	return parseLegacy(trimmed)
}

// parseLegacy reads the two pre-JSON encodings:
//
//	"work##urgent,home##chores"  — double-hash category/label pairs
//	"work#urgent"                — single-hash segments
//
// Parts are split on commas or literal "\n" escape sequences. In both forms
// only the first two fields are kept; extra segments are dropped, matching
// the historical behavior.
func parseLegacy(raw string) []Group {
	var groups []Group

	for _, part := range splitParts(raw) {
		if strings.Contains(part, "##") {
			fields := strings.Split(part, "##")
			category := fields[0]
			label := fields[1]
			if category != "" && label != "" {
				groups = append(groups, Group{Category: category, Labels: []string{label}})
			}
			continue
		}

		var segments []string
		for _, seg := range strings.Split(part, "#") {
			if seg != "" {
				segments = append(segments, seg)
			}
		}
		if len(segments) >= 2 {
			groups = append(groups, Group{Category: segments[0], Labels: []string{segments[1]}})
		}
	}

	return Normalize(groups)
}

// splitParts breaks a legacy string on commas and literal backslash-n
// sequences into trimmed, non-empty parts.
func splitParts(raw string) []string {
	var parts []string
	for _, chunk := range strings.Split(raw, ",") {
		for _, part := range strings.Split(chunk, `\n`) {
			part = strings.TrimSpace(part)
			if part != "" {
				parts = append(parts, part)
			}
		}
	}
	return parts
}

// Format renders groups for human display: "cat: a, b · cat2: c".
// Empty input yields an empty string.
func Format(groups []Group) string {
	rendered := make([]string, 0, len(groups))
	for _, g := range groups {
		rendered = append(rendered, g.Category+": "+strings.Join(g.Labels, ", "))
	}
	return strings.Join(rendered, " · ")
}
