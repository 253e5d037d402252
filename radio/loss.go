package radio

import (
	"math/rand/v2"

	"github.com/katalvlaran/gbpplanner/units"
)

// Loss decides, independently per message, whether a delivery is dropped.
// It is seeded explicitly from simulation.prng_seed rather
// than drawing from any package-global source, so a run is reproducible
// end to end.
type Loss struct {
	rng         *rand.Rand
	failureRate units.UnitInterval
}

// NewLoss builds a Loss with the given failure rate, seeded deterministically
// from seed.
func NewLoss(seed uint64, failureRate units.UnitInterval) *Loss {
	return &Loss{rng: rand.New(rand.NewPCG(seed, seed)), failureRate: failureRate}
}

// ShouldDrop draws one Bernoulli trial and reports whether this message
// should be dropped.
func (l *Loss) ShouldDrop() bool {
	return l.rng.Float64() < l.failureRate.Get()
}

// FailureRate returns the configured drop probability.
func (l *Loss) FailureRate() units.UnitInterval { return l.failureRate }
