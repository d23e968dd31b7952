package models

// Reactions added to recognized result messages
const (
	ReactionSolved = "✅"
	ReactionSharp  = "🎯"
	ReactionFailed = "💀"
)

// Directive tells the transport how to answer a message. Empty fields mean none.
type Directive struct {
	Reaction  string
	ReplyText string
}

// IsEmpty reports whether the transport should stay silent
func (d Directive) IsEmpty() bool {
	return d.Reaction == "" && d.ReplyText == ""
}

// ReactionFor picks the reaction for a scored result
func ReactionFor(r ScoredResult) string {
	switch {
	case !r.Solved:
		return ReactionFailed
	case r.AttemptsLabel.Attempts() <= 2:
		return ReactionSharp
	default:
		return ReactionSolved
	}
}
