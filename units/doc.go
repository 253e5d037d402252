// Package units provides small value types that carry their own invariants:
// Angle (radians in [0, 2π], with Add and Sub wrapping into [0, 2π)),
// UnitInterval (the closed interval
// [0.0, 1.0]), and MinLenVec (a slice that can never be popped below a
// configured minimum length).
//
// None of these types know anything about factor graphs or robots; they are
// plain support types used at the few seams that need them (radio loss rates
// live in a UnitInterval, a robot planner's waypoint list never drops below
// one waypoint).
package units
