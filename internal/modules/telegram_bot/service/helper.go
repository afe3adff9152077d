package service

import (
	"strconv"
	"strings"
)

// splitMessage cuts text at newline boundaries so no chunk exceeds max.
// A single line longer than max is cut mid-line as a last resort.
func splitMessage(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}
	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for len(line) > max {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, line[:max])
			line = line[max:]
		}
		if current.Len() > 0 && current.Len()+len(line)+1 > max {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func parseIndices(tokens []string) (indices []int, bad []string) {
	for _, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil {
			indices = append(indices, n)
		} else {
			bad = append(bad, tok)
		}
	}
	return indices, bad
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
