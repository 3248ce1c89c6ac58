package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with the die and the result.
//
// Roller itself satisfies Source, so non-die random choices (monster targets,
// loot recipients) draw from the same stream as the dice.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll rolls d once and logs the result.
//
// Postcondition: 1 <= result <= d.Faces().
func (r *Roller) Roll(d Die) int {
	v := Roll(d, r.src)
	r.logger.Debug("dice roll",
		zap.Stringer("die", d),
		zap.Int("result", v),
	)
	return v
}

// RollAll rolls every die in set once and returns the individual results.
//
// Postcondition: len(result) == len(set).
func (r *Roller) RollAll(set []Die) []int {
	out := make([]int, len(set))
	for i, d := range set {
		out[i] = r.Roll(d)
	}
	return out
}

// Intn delegates to the wrapped Source.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}
