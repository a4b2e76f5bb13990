package flappy

// Progress accumulates a round's score and coins.
type Progress struct {
	Score  int // pipes passed, never decreases
	Coins  int
	Target int // 0 = no win condition
}

// Passed adds one point per passed pipe.
func (p *Progress) Passed(n int) {
	if n > 0 {
		p.Score += n
	}
}

// Collected adds picked-up coins.
func (p *Progress) Collected(n int) {
	if n > 0 {
		p.Coins += n
	}
}

// Reached reports whether a target exists and the score meets it.
func (p Progress) Reached() bool {
	return p.Target > 0 && p.Score >= p.Target
}
