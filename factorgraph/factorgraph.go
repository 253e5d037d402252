package factorgraph

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/gbpplanner/message"
)

// adjacencyEntry records, for one variable, a factor it is attached to and
// the slot index that factor reserves for this variable.
type adjacencyEntry struct {
	factorID FactorID
	slot     int
}

// peerKey addresses an inter-robot factor by the remote endpoint it was
// built to talk to, so an incoming message can be routed to the right
// local factor without either side holding a pointer into the other's
// graph.
type peerKey struct {
	graph    FactorGraphID
	variable VariableID
}

// OutgoingMessage is one message an external_iteration produced for
// delivery to a peer robot's graph.
type OutgoingMessage struct {
	FromGraph    FactorGraphID
	FromVariable VariableID
	ToGraph      FactorGraphID
	ToVariable   VariableID
	Msg          message.Message
}

// FactorGraph owns one robot's variables and factors by value-like
// reference (arena of handles, not pointers across graphs).
type FactorGraph struct {
	id FactorGraphID

	variables map[VariableID]*Variable
	varOrder  []VariableID
	nextVarID VariableID

	factors      map[FactorID]*Factor
	factorOrder  []FactorID
	nextFactorID FactorID

	adjacency map[VariableID][]adjacencyEntry
	interRobot map[peerKey]FactorID
}

// New constructs an empty factor graph identified as id among its peers.
func New(id FactorGraphID) *FactorGraph {
	return &FactorGraph{
		id:         id,
		variables:  make(map[VariableID]*Variable),
		factors:    make(map[FactorID]*Factor),
		adjacency:  make(map[VariableID][]adjacencyEntry),
		interRobot: make(map[peerKey]FactorID),
	}
}

// ID returns this graph's handle.
func (g *FactorGraph) ID() FactorGraphID { return g.id }

// AddVariable creates a new variable with a loose prior and returns its
// handle.
func (g *FactorGraph) AddVariable() (VariableID, error) {
	id := g.nextVarID
	g.nextVarID++
	v, err := newVariable(id, VariableDim)
	if err != nil {
		return 0, fmt.Errorf("factorgraph: AddVariable: %w", err)
	}
	g.variables[id] = v
	g.varOrder = append(g.varOrder, id)

	return id, nil
}

// Variable returns the variable with the given handle.
func (g *FactorGraph) Variable(id VariableID) (*Variable, bool) {
	v, ok := g.variables[id]

	return v, ok
}

// Variables returns every variable handle in insertion order.
func (g *FactorGraph) Variables() []VariableID {
	out := make([]VariableID, len(g.varOrder))
	copy(out, g.varOrder)

	return out
}

// Factor returns the factor with the given handle.
func (g *FactorGraph) Factor(id FactorID) (*Factor, bool) {
	f, ok := g.factors[id]

	return f, ok
}

// Factors returns every factor handle in insertion order.
func (g *FactorGraph) Factors() []FactorID {
	out := make([]FactorID, len(g.factorOrder))
	copy(out, g.factorOrder)

	return out
}

func (g *FactorGraph) addFactor(kind Kind, slots []slot, model Model) (FactorID, error) {
	for _, s := range slots {
		if s.local {
			if _, ok := g.variables[s.variableID]; !ok {
				return 0, fmt.Errorf("factorgraph: addFactor: %w", ErrVariableNotFound)
			}
		}
	}
	id := g.nextFactorID
	g.nextFactorID++
	f := newFactor(id, kind, slots, model)
	g.factors[id] = f
	g.factorOrder = append(g.factorOrder, id)
	for i, s := range slots {
		if s.local {
			g.adjacency[s.variableID] = append(g.adjacency[s.variableID], adjacencyEntry{factorID: id, slot: i})
		}
	}

	return id, nil
}

// AddDynamicsFactor connects two consecutive time-step variables with a
// constant-velocity transition model.
func (g *FactorGraph) AddDynamicsFactor(from, to VariableID, model Model) (FactorID, error) {
	return g.addFactor(Dynamics, []slot{
		{local: true, variableID: from},
		{local: true, variableID: to},
	}, model)
}

// AddObstacleFactor attaches a unary signed-distance pushback to v.
func (g *FactorGraph) AddObstacleFactor(v VariableID, model Model) (FactorID, error) {
	return g.addFactor(Obstacle, []slot{{local: true, variableID: v}}, model)
}

// AddTrackingFactor attaches a unary pull toward the current path to v.
func (g *FactorGraph) AddTrackingFactor(v VariableID, model Model) (FactorID, error) {
	return g.addFactor(Tracking, []slot{{local: true, variableID: v}}, model)
}

// AddInterRobotFactor connects local to a peer robot's variable, indexed
// by (peerGraph, peerVariable) rather than a pointer into the peer's
// graph. The new factor starts active.
func (g *FactorGraph) AddInterRobotFactor(local VariableID, peerGraph FactorGraphID, peerVariable VariableID, model Model) (FactorID, error) {
	id, err := g.addFactor(InterRobot, []slot{
		{local: true, variableID: local},
		{local: false, peerGraph: peerGraph, peerVariable: peerVariable},
	}, model)
	if err != nil {
		return 0, err
	}
	g.interRobot[peerKey{graph: peerGraph, variable: peerVariable}] = id

	return id, nil
}

// RemoveFactor deletes a factor and its adjacency entries. Deleting an
// inter-robot factor that a peer message is in flight to is harmless: the
// next DeliverExternal simply misses the lookup and the message is
// dropped, matching "peer definitively lost".
func (g *FactorGraph) RemoveFactor(id FactorID) error {
	f, ok := g.factors[id]
	if !ok {
		return fmt.Errorf("factorgraph: RemoveFactor: %w", ErrFactorNotFound)
	}
	for i, s := range f.slots {
		if s.local {
			entries := g.adjacency[s.variableID]
			for k, e := range entries {
				if e.factorID == id && e.slot == i {
					g.adjacency[s.variableID] = append(entries[:k], entries[k+1:]...)

					break
				}
			}
		} else {
			delete(g.interRobot, peerKey{graph: s.peerGraph, variable: s.peerVariable})
		}
	}
	delete(g.factors, id)
	for i, fid := range g.factorOrder {
		if fid == id {
			g.factorOrder = append(g.factorOrder[:i], g.factorOrder[i+1:]...)

			break
		}
	}

	return nil
}

// SetFactorActive toggles an inter-robot factor's active flag as the radio
// model discovers or loses the peer.
func (g *FactorGraph) SetFactorActive(id FactorID, active bool) error {
	f, ok := g.factors[id]
	if !ok {
		return fmt.Errorf("factorgraph: SetFactorActive: %w", ErrFactorNotFound)
	}

	return f.SetActive(active)
}

// InterRobotFactorFor returns the factor this graph created to reach
// (peerGraph, peerVariable), if any.
func (g *FactorGraph) InterRobotFactorFor(peerGraph FactorGraphID, peerVariable VariableID) (FactorID, bool) {
	id, ok := g.interRobot[peerKey{graph: peerGraph, variable: peerVariable}]

	return id, ok
}

func isInternalKind(k Kind) bool { return k == Dynamics || k == Obstacle || k == Tracking }

// sortedVarOrder returns variable handles in ascending numeric order,
// independent of insertion order.
func (g *FactorGraph) sortedVarOrder() []VariableID {
	out := append([]VariableID(nil), g.varOrder...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// InternalIteration runs one sweep over dynamics, obstacle, and tracking
// factors: for each variable in ascending order, and for each
// internal factor attached to it in insertion order, the variable sends
// its belief-excluding-target message and the factor immediately
// recomputes and redistributes its outgoing messages.
func (g *FactorGraph) InternalIteration() error {
	for _, vid := range g.sortedVarOrder() {
		v := g.variables[vid]
		for _, adj := range g.adjacency[vid] {
			f := g.factors[adj.factorID]
			if !isInternalKind(f.Kind()) {
				continue
			}
			msg, err := v.MessageTo(adj.factorID)
			if err != nil {
				return fmt.Errorf("factorgraph: InternalIteration: %w", err)
			}
			if err := f.ReceiveAt(adj.slot, msg); err != nil {
				return fmt.Errorf("factorgraph: InternalIteration: %w", err)
			}
			out, err := f.Update()
			if err != nil {
				return fmt.Errorf("factorgraph: InternalIteration: %w", err)
			}
			for slotIdx, outMsg := range out {
				target, ok := f.LocalVariableAt(slotIdx)
				if !ok {
					continue
				}
				g.variables[target].Receive(adj.factorID, outMsg)
			}
		}
	}

	return nil
}

// ExternalIteration runs one sweep over inter-robot factors only:
// messages destined for a local variable are deposited directly; messages
// destined for the peer slot are collected and returned for the comms
// layer to route (and possibly drop) before delivery.
func (g *FactorGraph) ExternalIteration() ([]OutgoingMessage, error) {
	var outgoing []OutgoingMessage
	for _, vid := range g.sortedVarOrder() {
		v := g.variables[vid]
		for _, adj := range g.adjacency[vid] {
			f := g.factors[adj.factorID]
			if f.Kind() != InterRobot {
				continue
			}
			msg, err := v.MessageTo(adj.factorID)
			if err != nil {
				return nil, fmt.Errorf("factorgraph: ExternalIteration: %w", err)
			}
			if err := f.ReceiveAt(adj.slot, msg); err != nil {
				return nil, fmt.Errorf("factorgraph: ExternalIteration: %w", err)
			}
			out, err := f.Update()
			if err != nil {
				return nil, fmt.Errorf("factorgraph: ExternalIteration: %w", err)
			}
			peerIdx, peerGraph, peerVariable, hasPeer := f.PeerSlotIndex()
			for slotIdx, outMsg := range out {
				if target, ok := f.LocalVariableAt(slotIdx); ok {
					g.variables[target].Receive(adj.factorID, outMsg)

					continue
				}
				if hasPeer && slotIdx == peerIdx {
					outgoing = append(outgoing, OutgoingMessage{
						FromGraph:    g.id,
						FromVariable: vid,
						ToGraph:      peerGraph,
						ToVariable:   peerVariable,
						Msg:          outMsg,
					})
				}
			}
		}
	}

	return outgoing, nil
}

// DeliverExternal applies an OutgoingMessage produced by another graph's
// ExternalIteration: it looks up the local inter-robot factor addressed to
// (msg.FromGraph, msg.FromVariable) and deposits the message at its peer
// slot. Returns ErrFactorNotFound if no such factor exists (the pair was
// never created, or was removed after the peer was lost).
func (g *FactorGraph) DeliverExternal(msg OutgoingMessage) error {
	id, ok := g.interRobot[peerKey{graph: msg.FromGraph, variable: msg.FromVariable}]
	if !ok {
		return fmt.Errorf("factorgraph: DeliverExternal: %w", ErrFactorNotFound)
	}
	f := g.factors[id]
	peerIdx, _, _, hasPeer := f.PeerSlotIndex()
	if !hasPeer {
		return fmt.Errorf("factorgraph: DeliverExternal: %w", ErrNotInterRobot)
	}

	return f.ReceiveAt(peerIdx, msg.Msg)
}
