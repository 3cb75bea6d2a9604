// Package game holds the pure pattern-evaluation logic for all
// supported win-pattern families on a 5x5 bingo grid.
package game

import "github.com/openbingo/board-server/models"

// CellMask is a bitmask over the 25 grid cells, row-major, bit i = cell i.
type CellMask uint32

func cells(idx ...int) CellMask {
	var m CellMask
	for _, i := range idx {
		m |= 1 << i
	}
	return m
}

// patternsByType maps each game type to its ordered winning patterns.
// The pattern's position in the slice is its bit in satisfied/claimed
// masks, so the order here is part of the wire contract.
var patternsByType = map[models.GameType][]CellMask{
	models.GameTraditional: {
		// Rows, bits 0-4.
		cells(0, 1, 2, 3, 4),
		cells(5, 6, 7, 8, 9),
		cells(10, 11, 12, 13, 14),
		cells(15, 16, 17, 18, 19),
		cells(20, 21, 22, 23, 24),
		// Columns, bits 5-9.
		cells(0, 5, 10, 15, 20),
		cells(1, 6, 11, 16, 21),
		cells(2, 7, 12, 17, 22),
		cells(3, 8, 13, 18, 23),
		cells(4, 9, 14, 19, 24),
		// Diagonals, bits 10-11.
		cells(0, 6, 12, 18, 24),
		cells(4, 8, 12, 16, 20),
	},
	models.GameFourCorners: {
		cells(0, 4, 20, 24),
	},
	models.GamePostageStamp: {
		cells(0, 1, 5, 6),
		cells(3, 4, 8, 9),
		cells(15, 16, 20, 21),
		cells(18, 19, 23, 24),
	},
	models.GameCoverAll: {
		cells(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24),
	},
	models.GameX: {
		cells(0, 4, 6, 8, 12, 16, 18, 20, 24),
	},
	models.GameY: {
		cells(0, 4, 6, 8, 12, 17, 22),
	},
	models.GameFrameOutside: {
		cells(0, 1, 2, 3, 4, 5, 9, 10, 14, 15, 19, 20, 21, 22, 23, 24),
	},
	models.GameFrameInside: {
		cells(6, 7, 8, 11, 13, 16, 17, 18),
	},
}

// Coverage computes the effective-coverage mask for a card: a cell
// counts as covered iff it is the free cell, or it is player-marked and
// its number has been called.
func Coverage(numbers [25]int, marks [25]bool, called map[int]bool) CellMask {
	var covered CellMask
	for i := 0; i < 25; i++ {
		if i == models.FreeCell {
			covered |= 1 << i
			continue
		}
		if marks[i] && called[numbers[i]] {
			covered |= 1 << i
		}
	}
	return covered
}

// SatisfiedMask returns the bitmask of winning patterns currently
// satisfied by the given coverage for the given game type.
func SatisfiedMask(gt models.GameType, covered CellMask) int {
	mask := 0
	for bit, p := range patternsByType[gt] {
		if covered&p == p {
			mask |= 1 << bit
		}
	}
	return mask
}

// CycleCount returns how many display patterns a game type cycles
// through on the board, or 0 for single-pattern types.
func CycleCount(gt models.GameType) int {
	if n := len(patternsByType[gt]); n > 1 {
		return n
	}
	return 0
}
