// Package gbpplanner is a multi-robot trajectory planner built on
// Gaussian Belief Propagation.
//
// 🤖 What is gbpplanner?
//
//	Each robot keeps a small factor graph over its own future states,
//	exchanges Gaussian messages with nearby robots over a lossy radio,
//	and steers toward the consensus the messages converge on:
//
//	  • Canonical-form Gaussians: products, Schur-complement marginals
//	  • Four factor kinds: dynamics, obstacle, inter-robot, tracking
//	  • Named iteration schedules interleaving internal/external sweeps
//	  • A radius-limited radio with seeded Bernoulli message loss
//
// ✨ Why this shape?
//
//   - Distributed      — no robot ever reads another robot's graph
//   - Deterministic    — fixed sweep order, explicitly seeded randomness
//   - Degradable       — singular math turns into "no information", not panics
//   - Pure Go          — one test-only dependency, no cgo
//
// Everything is organized under leaf-first subpackages:
//
//	matrix/       — dense storage and the LU/inverse kernels the core needs
//	units/        — Angle, UnitInterval, MinLenVec support types
//	gaussian/     — canonical-form Gaussians and marginalization
//	message/      — factor↔variable messages with an empty sentinel
//	sdf/          — signed-distance and path sampling collaborators
//	factorgraph/  — variables, factors, sweeps, GraphViz export
//	schedule/     — the named iteration-schedule policies
//	radio/        — antennas, link lifecycle, message loss
//	config/       — validated immutable configuration
//	robotplanner/ — the per-robot planning loop
//	orchestrator/ — scenarios, the tick driver, pause/step/time-scale
//	cmd/          — the headless CLI
//
// Quick ASCII example of one robot's graph (v0 clamped, v3 at the horizon):
//
//	  [v0]──d──[v1]──d──[v2]──d──[v3]
//	            │ \      │ \      │ \
//	            o  t     o  t     o  t      d=dynamics o=obstacle t=tracking
//
// Start with orchestrator.New(config.Default()) and LoadScenarioByName,
// or run cmd/gbpplanner --initial-scenario circle.
package gbpplanner
