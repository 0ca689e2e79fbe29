package ids

import "strings"

// NormalizeUnique lowercases IDs and drops empty strings and duplicates,
// preserving the order of first appearance.
func NormalizeUnique(ids []string) []string {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		unique = append(unique, idLower)
	}
	return unique
}

// MatchPrefix finds the ID carrying the given prefix among normalized IDs.
// It reports whether any ID matched and whether the prefix was ambiguous.
func MatchPrefix(ids []string, prefix string) (match string, found, ambiguous bool) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", false, false
	}

	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if found {
			return "", true, true
		}
		match = id
		found = true
	}

	return match, found, false
}

// UniquePrefixLengths returns the shortest unique prefix length for each ID.
// The input is expected to be normalized with NormalizeUnique.
func UniquePrefixLengths(ids []string) map[string]int {
	lengths := make(map[string]int, len(ids))
	for _, id := range ids {
		lengths[id] = uniquePrefixLength(id, ids)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
