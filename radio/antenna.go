package radio

import "fmt"

// AntennaID identifies one robot's antenna within a Network. It is expected
// to coincide with that robot's factorgraph.FactorGraphID, since the radio
// layer and the factor graph address the same robot population.
type AntennaID int

func (id AntennaID) String() string { return fmt.Sprintf("a%d", int(id)) }

// antenna is the mutable per-robot state the Network tracks: its current
// position, its fixed range, and whether it is currently transmitting.
type antenna struct {
	id     AntennaID
	x, y   float64
	radius float64
	active bool
}
