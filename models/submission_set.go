package models

// SubmissionSet tracks the distinct players who submitted a game against
// the number of players expected to submit it.
type SubmissionSet struct {
	expected   int
	submitters map[string]struct{}
	order      []string
}

// NewSubmissionSet creates a set expecting the given number of distinct submitters
func NewSubmissionSet(expected int) *SubmissionSet {
	if expected < 0 {
		expected = 0
	}
	return &SubmissionSet{
		expected:   expected,
		submitters: make(map[string]struct{}),
	}
}

// Add records a submitter and reports whether they were new
func (s *SubmissionSet) Add(playerID string) bool {
	if _, ok := s.submitters[playerID]; ok {
		return false
	}
	s.submitters[playerID] = struct{}{}
	s.order = append(s.order, playerID)
	return true
}

// Has reports whether the player already submitted
func (s *SubmissionSet) Has(playerID string) bool {
	_, ok := s.submitters[playerID]
	return ok
}

// Count returns the number of distinct submitters
func (s *SubmissionSet) Count() int {
	return len(s.order)
}

// Expected returns the expected number of submitters
func (s *SubmissionSet) Expected() int {
	return s.expected
}

// SetExpected updates the expected cardinality, e.g. after membership changes
func (s *SubmissionSet) SetExpected(expected int) {
	if expected < 0 {
		expected = 0
	}
	s.expected = expected
}

// Complete reports whether every expected player has submitted.
// A set with no expectation is never complete.
func (s *SubmissionSet) Complete() bool {
	return s.expected > 0 && len(s.order) >= s.expected
}

// Submitters returns the submitters in arrival order
func (s *SubmissionSet) Submitters() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
