package entities

// Rank is the letter grade shown on the results screen.
type Rank string

const (
	RankS Rank = "S"
	RankA Rank = "A"
	RankB Rank = "B"
	RankC Rank = "C"
	RankD Rank = "D"
	RankF Rank = "F"
)

// RankFor grades a final score. The thresholds are fixed and independent of
// the configured per-question reward: with the default reward of 30 a perfect
// ten-question run scores 300 and ranks B, so changing the reward changes how
// many correct answers each rank takes.
func RankFor(finalScore int) Rank {
	switch {
	case finalScore >= 500:
		return RankS
	case finalScore >= 400:
		return RankA
	case finalScore >= 300:
		return RankB
	case finalScore >= 200:
		return RankC
	case finalScore >= 100:
		return RankD
	default:
		return RankF
	}
}

// Emoji returns a medal-style marker for the rank, used on the results screen.
func (r Rank) Emoji() string {
	switch r {
	case RankS:
		return "🏆"
	case RankA:
		return "🥇"
	case RankB:
		return "🥈"
	case RankC:
		return "🥉"
	case RankD:
		return "📘"
	default:
		return "📉"
	}
}
