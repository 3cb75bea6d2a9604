package game

import (
	"testing"

	"github.com/openbingo/board-server/models"
)

// card with numbers 1..25 laid out row-major, free cell empty.
func sequentialNumbers() [25]int {
	var numbers [25]int
	for i := range numbers {
		if i == models.FreeCell {
			continue
		}
		numbers[i] = i + 1
	}
	return numbers
}

func markAll() [25]bool {
	var marks [25]bool
	for i := range marks {
		marks[i] = true
	}
	return marks
}

func calledSet(nums ...int) map[int]bool {
	set := make(map[int]bool, len(nums))
	for _, n := range nums {
		set[n] = true
	}
	return set
}

func TestCoverageFreeCellAlwaysCovered(t *testing.T) {
	covered := Coverage(sequentialNumbers(), [25]bool{}, calledSet())
	if covered != 1<<models.FreeCell {
		t.Fatalf("expected only free cell covered, got %025b", covered)
	}
}

func TestCoverageRequiresMarkAndCall(t *testing.T) {
	numbers := sequentialNumbers()
	var marks [25]bool
	marks[0] = true // number 1, not called
	marks[1] = true // number 2, called
	covered := Coverage(numbers, marks, calledSet(2, 3))
	want := CellMask(1<<1 | 1<<models.FreeCell)
	if covered != want {
		t.Fatalf("covered = %025b, want %025b", covered, want)
	}
}

func TestTraditionalRowAndColumnBits(t *testing.T) {
	numbers := sequentialNumbers()
	marks := markAll()

	// Row 0: cells 0-4 hold numbers 1-5.
	covered := Coverage(numbers, marks, calledSet(1, 2, 3, 4, 5))
	if got := SatisfiedMask(models.GameTraditional, covered); got != 1<<0 {
		t.Fatalf("row 0 mask = %b, want %b", got, 1<<0)
	}

	// Column 2 passes through the free cell: numbers 3, 8, 18, 23.
	covered = Coverage(numbers, marks, calledSet(3, 8, 18, 23))
	if got := SatisfiedMask(models.GameTraditional, covered); got != 1<<7 {
		t.Fatalf("column 2 mask = %b, want %b", got, 1<<7)
	}

	// Main diagonal: numbers 1, 7, 19, 25 plus the free cell.
	covered = Coverage(numbers, marks, calledSet(1, 7, 19, 25))
	if got := SatisfiedMask(models.GameTraditional, covered); got != 1<<10 {
		t.Fatalf("diagonal mask = %b, want %b", got, 1<<10)
	}
}

func TestSinglePatternGameTypes(t *testing.T) {
	numbers := sequentialNumbers()
	marks := markAll()

	tests := []struct {
		gameType models.GameType
		called   []int
	}{
		{models.GameFourCorners, []int{1, 5, 21, 25}},
		{models.GameX, []int{1, 5, 7, 9, 17, 19, 21, 25}},
		{models.GameY, []int{1, 5, 7, 9, 18, 23}},
		{models.GameFrameOutside, []int{1, 2, 3, 4, 5, 6, 10, 11, 15, 16, 20, 21, 22, 23, 24, 25}},
		{models.GameFrameInside, []int{7, 8, 9, 12, 14, 17, 18, 19}},
	}
	for _, tt := range tests {
		covered := Coverage(numbers, marks, calledSet(tt.called...))
		if got := SatisfiedMask(tt.gameType, covered); got != 1 {
			t.Errorf("%s: mask = %b, want 1", tt.gameType, got)
		}
		// Removing any one call breaks the pattern.
		short := calledSet(tt.called[1:]...)
		covered = Coverage(numbers, marks, short)
		if got := SatisfiedMask(tt.gameType, covered); got != 0 {
			t.Errorf("%s: partial mask = %b, want 0", tt.gameType, got)
		}
	}
}

func TestPostageStampCornerBlocks(t *testing.T) {
	numbers := sequentialNumbers()
	marks := markAll()

	// Top-left block holds numbers 1, 2, 6, 7.
	covered := Coverage(numbers, marks, calledSet(1, 2, 6, 7))
	if got := SatisfiedMask(models.GamePostageStamp, covered); got != 1<<0 {
		t.Fatalf("top-left block mask = %b, want %b", got, 1<<0)
	}

	// Bottom-right block holds numbers 19, 20, 24, 25.
	covered = Coverage(numbers, marks, calledSet(19, 20, 24, 25))
	if got := SatisfiedMask(models.GamePostageStamp, covered); got != 1<<3 {
		t.Fatalf("bottom-right block mask = %b, want %b", got, 1<<3)
	}
}

func TestCoverAllNeedsEveryCell(t *testing.T) {
	numbers := sequentialNumbers()
	marks := markAll()
	all := make([]int, 0, 24)
	for i := 1; i <= 25; i++ {
		if i != 13 { // 13 sits on the free cell in this layout
			all = append(all, i)
		}
	}
	covered := Coverage(numbers, marks, calledSet(all...))
	if got := SatisfiedMask(models.GameCoverAll, covered); got != 1 {
		t.Fatalf("cover all mask = %b, want 1", got)
	}
	covered = Coverage(numbers, marks, calledSet(all[1:]...))
	if got := SatisfiedMask(models.GameCoverAll, covered); got != 0 {
		t.Fatalf("partial cover all mask = %b, want 0", got)
	}
}

func TestCycleCount(t *testing.T) {
	if got := CycleCount(models.GameTraditional); got != 12 {
		t.Errorf("traditional cycle count = %d, want 12", got)
	}
	if got := CycleCount(models.GamePostageStamp); got != 4 {
		t.Errorf("postage stamp cycle count = %d, want 4", got)
	}
	if got := CycleCount(models.GameCoverAll); got != 0 {
		t.Errorf("cover all cycle count = %d, want 0", got)
	}
}
