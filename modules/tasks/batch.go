package tasks

import (
	"fmt"
	"strconv"
	"strings"
)

// NextBatchPrefix derives the 4-digit zero-padded batch prefix that follows
// the given greatest task id. The prefix is the substring before the first
// hyphen; when it is entirely digits the next batch is that value plus one,
// otherwise (empty store, malformed id) the sequence starts at 1.
//
// Ids are minted with consistent zero padding, so the store's lexicographic
// greatest id matches the numeric greatest up to batch 9999.
func NextBatchPrefix(greatestTaskID string) string {
	next := 1
	prefix, _, _ := strings.Cut(greatestTaskID, "-")
	if isDigits(prefix) {
		if n, err := strconv.Atoi(prefix); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%04d", next)
}

// RowTaskID builds the task id for the 1-based row index of a batch.
func RowTaskID(prefix string, rowIndex int) string {
	return fmt.Sprintf("%s-%03d", prefix, rowIndex)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
