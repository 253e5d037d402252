package factorgraph

import "fmt"

// VariableID is a logical handle to a variable node, valid for the
// lifetime of the FactorGraph that created it. It is never reused within
// one graph's lifetime, so a stale handle reliably misses rather than
// silently aliasing a different variable.
type VariableID int

// FactorID is a logical handle to a factor node, with the same lifetime
// and non-reuse guarantees as VariableID.
type FactorID int

// FactorGraphID identifies a robot's factor graph among its peers, the
// addressing unit the comms layer uses to route inter-robot messages
// without holding a live pointer into another robot's graph.
type FactorGraphID int

func (id VariableID) String() string    { return fmt.Sprintf("v%d", int(id)) }
func (id FactorID) String() string      { return fmt.Sprintf("f%d", int(id)) }
func (id FactorGraphID) String() string { return fmt.Sprintf("g%d", int(id)) }

// Kind distinguishes the four measurement models a factor can carry.
type Kind int

const (
	// Dynamics is a binary factor over two consecutive time-step variables
	// enforcing a constant-velocity transition.
	Dynamics Kind = iota
	// Obstacle is a unary factor pushing a variable out of the nearest
	// obstacle surface, per a signed-distance sample.
	Obstacle
	// InterRobot is a binary factor between a local variable and a peer
	// robot's same-indexed variable, enforcing a soft safety distance.
	InterRobot
	// Tracking is a unary factor pulling a variable toward the nearest
	// point on the robot's current path.
	Tracking
)

// String returns the kind's name, as used in GraphViz export.
func (k Kind) String() string {
	switch k {
	case Dynamics:
		return "dynamics"
	case Obstacle:
		return "obstacle"
	case InterRobot:
		return "interrobot"
	case Tracking:
		return "tracking"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
