package models

// Score is the competitive value of one result
type Score struct {
	Base  int
	Bonus int
	Total int
}

// TierGap is the distance between adjacent base score tiers
const TierGap = 100

// BasePoints returns the base score for an attempts label.
// Unsolved and unknown labels score zero.
func BasePoints(label AttemptsLabel) int {
	switch label {
	case "1":
		return 600
	case "2":
		return 500
	case "3":
		return 400
	case "4":
		return 300
	case "5":
		return 200
	case "6":
		return 100
	default:
		return 0
	}
}

// GridBonus sums the tie-break value of every symbol in the grid
func GridBonus(grid []GridRow) int {
	bonus := 0
	for _, row := range grid {
		bonus += row.BonusPoints()
	}
	return bonus
}

// NewScore computes the score for an attempts label and grid.
// The bonus of a full grid stays below TierGap so attempts always dominate.
func NewScore(label AttemptsLabel, grid []GridRow) Score {
	base := BasePoints(label)
	bonus := GridBonus(grid)
	return Score{
		Base:  base,
		Bonus: bonus,
		Total: base + bonus,
	}
}

// IsPerfect returns true if the result was solved in one guess
func (s Score) IsPerfect() bool {
	return s.Base == BasePoints("1")
}
