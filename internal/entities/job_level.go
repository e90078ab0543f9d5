package entities

import "strings"

var seniority = map[string]int{
	"entry level": 1,
	"junior":      2,
	"mid level":   3,
	"senior":      4,
	"lead":        5,
	"manager":     6,
	"director":    7,
	"executive":   8,
}

const unknownSeniorityRank = 9

// SeniorityRank orders job level names from Entry Level (1) to Executive (8).
// Unrecognized names share the last rank.
func SeniorityRank(levelName string) int {
	if rank, ok := seniority[strings.ToLower(strings.TrimSpace(levelName))]; ok {
		return rank
	}
	return unknownSeniorityRank
}
