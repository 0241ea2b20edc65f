package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// InvalidLevel marks a level element that was not a number. The schema
// rejects it when the creature is validated.
const InvalidLevel = -1

var ErrMovesetMismatch = errors.New("moveset parameters are not of equal length")

// BuildMoveset pairs comma-separated move names with comma-separated levels
// by position. Both lists are trimmed per element. The lists must have the
// same number of elements.
func BuildMoveset(names, levels string) ([]MoveSetEntry, error) {
	nameList := splitTrim(names, ",")
	levelList := splitTrim(levels, ",")
	if len(nameList) != len(levelList) {
		return nil, ErrMovesetMismatch
	}

	moveset := make([]MoveSetEntry, 0, len(nameList))
	for i := range nameList {
		moveset = append(moveset, MoveSetEntry{
			LevelLearned: parseLevel(levelList[i]),
			MoveName:     nameList[i],
		})
	}
	return moveset, nil
}

// SplitTokens splits a whitespace-delimited field into its tokens. Empty
// input yields an empty, non-nil list.
func SplitTokens(s string) []string {
	tokens := strings.Fields(s)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// An empty element counts as level 0.
func parseLevel(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n != float64(int(n)) {
		return InvalidLevel
	}
	return int(n)
}
