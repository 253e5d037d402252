package factorgraph

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gbpplanner/gaussian"
	"github.com/katalvlaran/gbpplanner/matrix"
	"github.com/katalvlaran/gbpplanner/message"
)

// slot is one adjacent-variable position in a factor's joint state. Most
// factors only ever have local slots; InterRobot factors have exactly one
// local slot (this robot's variable) and one peer slot, addressed by
// (FactorGraphID, VariableID) rather than a live pointer, so a vanished
// peer is detected by a failed lookup at delivery time, not a dangling
// reference.
type slot struct {
	local        bool
	variableID   VariableID
	peerGraph    FactorGraphID
	peerVariable VariableID
}

// Factor is a polymorphic node dispatching to one of the four measurement
// models via the Model capability interface.
type Factor struct {
	id    FactorID
	kind  Kind
	slots []slot
	model Model

	enabled bool
	active  bool // meaningful only for InterRobot; always true otherwise

	linPoint []float64
	h0       []float64
	jac      *matrix.Dense

	inbox map[int]message.Message

	messagesSent     int
	messagesReceived int
	warned           bool
	warnings         []string
}

func newFactor(id FactorID, kind Kind, slots []slot, model Model) *Factor {
	return &Factor{
		id:      id,
		kind:    kind,
		slots:   slots,
		model:   model,
		enabled: true,
		active:  true,
		inbox:   make(map[int]message.Message),
	}
}

// ID returns this factor's handle.
func (f *Factor) ID() FactorID { return f.id }

// Kind returns the factor's measurement-model kind.
func (f *Factor) Kind() Kind { return f.kind }

// SlotCount returns the number of adjacent-variable slots.
func (f *Factor) SlotCount() int { return len(f.slots) }

// jointDim is the sum of adjacent dimensions: every slot is
// VariableDim wide.
func (f *Factor) jointDim() int { return len(f.slots) * VariableDim }

// LocalVariableAt returns the VariableID bound to slot i, if that slot is
// local (ok is false for the external peer slot of an inter-robot factor).
func (f *Factor) LocalVariableAt(i int) (id VariableID, ok bool) {
	if i < 0 || i >= len(f.slots) || !f.slots[i].local {
		return 0, false
	}

	return f.slots[i].variableID, true
}

// PeerSlotIndex returns the index of the external peer slot and its
// (FactorGraphID, VariableID) address, if this factor has one.
func (f *Factor) PeerSlotIndex() (idx int, peerGraph FactorGraphID, peerVariable VariableID, ok bool) {
	for i, s := range f.slots {
		if !s.local {
			return i, s.peerGraph, s.peerVariable, true
		}
	}

	return 0, 0, 0, false
}

// Enabled reports whether this factor currently participates in updates.
func (f *Factor) Enabled() bool { return f.enabled }

// SetEnabled toggles the factor category on/off at runtime. A disabled factor emits identity messages and skips
// linearization entirely.
func (f *Factor) SetEnabled(enabled bool) { f.enabled = enabled }

// Active reports whether an inter-robot factor's owning antenna currently
// has the peer in radio range. Always true for non-InterRobot kinds.
func (f *Factor) Active() bool { return f.active }

// SetActive marks an inter-robot factor active/inactive as the radio model
// discovers or loses the peer. Returns ErrNotInterRobot for
// any other kind.
func (f *Factor) SetActive(active bool) error {
	if f.kind != InterRobot {
		return fmt.Errorf("factorgraph: Factor.SetActive: %w", ErrNotInterRobot)
	}
	f.active = active

	return nil
}

// ReceiveAt stores msg as the last message received at slot i, overwriting
// any previous entry.
func (f *Factor) ReceiveAt(i int, msg message.Message) error {
	if i < 0 || i >= len(f.slots) {
		return fmt.Errorf("factorgraph: Factor.ReceiveAt: %w", ErrNoSuchPeerSlot)
	}
	f.inbox[i] = msg
	f.messagesReceived++

	return nil
}

// LastResidual returns the measurement h(x0) computed at the last
// relinearization (in the model's output space; z is not subtracted), or
// nil if the factor has never linearized.
func (f *Factor) LastResidual() []float64 { return f.h0 }

// MessagesSent / MessagesReceived / ResetMessageCount mirror Variable's
// counters.
func (f *Factor) MessagesSent() int     { return f.messagesSent }
func (f *Factor) MessagesReceived() int { return f.messagesReceived }
func (f *Factor) ResetMessageCount() {
	f.messagesSent = 0
	f.messagesReceived = 0
}

// Warnings returns the warnings recorded by degraded (singular-fallback)
// updates: at most one per factor per run, the first condition met.
func (f *Factor) Warnings() []string { return f.warnings }

func (f *Factor) warnOnce(msg string) {
	if f.warned {
		return
	}
	f.warned = true
	f.warnings = append(f.warnings, msg)
}

// emptyOutgoing builds the "no new information" response for every slot,
// used whenever the factor is disabled, inactive, or degenerates
// numerically.
func (f *Factor) emptyOutgoing() map[int]message.Message {
	out := make(map[int]message.Message, len(f.slots))
	for i := range f.slots {
		out[i] = message.Empty(VariableDim)
	}
	f.messagesSent += len(out)

	return out
}

// Update runs one linearize-and-marginalize pass: it resolves the
// incoming message at each slot, relinearizes if the joint mean moved past
// the model's threshold, builds the joint measurement Gaussian, folds in
// every *other* slot's incoming information, and marginalizes onto each
// slot in turn to produce that slot's outgoing message.
//
// Degenerate cases (disabled, inactive, NaN/Inf measurement sample,
// singular marginalization block) degrade to identity messages rather than
// failing. A slot whose incoming belief has no mean is linearized at the
// previous linearization point instead.
func (f *Factor) Update() (map[int]message.Message, error) {
	if !f.enabled || (f.kind == InterRobot && !f.active) {
		return f.emptyOutgoing(), nil
	}

	jointDim := f.jointDim()
	xHat := make([]float64, jointDim)
	incoming := make([]gaussian.Gaussian, len(f.slots))
	for i := range f.slots {
		msg, ok := f.inbox[i]
		if !ok {
			msg = message.Empty(VariableDim)
		}
		g, err := msg.Gaussian()
		if err != nil {
			return nil, fmt.Errorf("factorgraph: Factor.Update: %w", err)
		}
		incoming[i] = g

		mean, err := g.Mean()
		if err != nil {
			// Singular incoming belief: no usable mean. Linearize this slot
			// at the previous linearization point (zeros before the first);
			// its incoming information is still folded in below.
			f.warnOnce("factor: singular incoming belief, reusing previous linearization point")
			if f.linPoint != nil {
				copy(xHat[i*VariableDim:(i+1)*VariableDim], f.linPoint[i*VariableDim:(i+1)*VariableDim])
			}

			continue
		}
		copy(xHat[i*VariableDim:(i+1)*VariableDim], mean)
	}

	if f.needsRelinearization(xHat) {
		f.linPoint = append([]float64(nil), xHat...)
		h0, err := f.model.H(f.linPoint)
		if err != nil {
			return nil, fmt.Errorf("factorgraph: Factor.Update: %w", err)
		}
		if anyNonFinite(h0) {
			// A NaN/Inf sample is treated as "no measurement".
			f.warnOnce("factor: non-finite measurement sample, emitting identity")

			return f.emptyOutgoing(), nil
		}
		jac, err := f.model.J(f.linPoint)
		if err != nil {
			return nil, fmt.Errorf("factorgraph: Factor.Update: %w", err)
		}
		f.h0 = h0
		f.jac = jac
	}

	jointGaussian, err := f.buildJointGaussian()
	if err != nil {
		return nil, err
	}

	out := make(map[int]message.Message, len(f.slots))
	for vi := range f.slots {
		acc := jointGaussian
		for ui := range f.slots {
			if ui == vi {
				continue
			}
			etaFull, lambdaFull, err := embedBlock(jointDim, ui*VariableDim, VariableDim, incoming[ui].Eta(), incoming[ui].Lambda())
			if err != nil {
				return nil, err
			}
			embedded, err := gaussian.FromCanonical(etaFull, lambdaFull)
			if err != nil {
				return nil, err
			}
			acc, err = gaussian.Product(acc, embedded)
			if err != nil {
				return nil, fmt.Errorf("factorgraph: Factor.Update: %w", err)
			}
		}

		keep := make([]int, VariableDim)
		for k := 0; k < VariableDim; k++ {
			keep[k] = vi*VariableDim + k
		}
		marginal, err := gaussian.Marginalize(acc, keep)
		if err != nil {
			f.warnOnce(fmt.Sprintf("factor: singular marginalization for slot %d, emitting identity", vi))
			out[vi] = message.Empty(VariableDim)

			continue
		}
		out[vi] = message.FromGaussian(marginal)
	}
	f.messagesSent += len(out)

	return out, nil
}

func (f *Factor) needsRelinearization(xHat []float64) bool {
	if f.linPoint == nil {
		return true
	}
	var sumSq float64
	for i := range xHat {
		d := xHat[i] - f.linPoint[i]
		sumSq += d * d
	}

	return math.Sqrt(sumSq) > f.model.RelinearizationThreshold()
}

func (f *Factor) buildJointGaussian() (gaussian.Gaussian, error) {
	jointDim := f.jointDim()
	z := f.model.Z()
	lambdaM := f.model.LambdaM()

	// r = J x0 + z - h(x0)
	jx0, err := matrix.MatVec(f.jac, f.linPoint)
	if err != nil {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: %w", err)
	}
	r := make([]float64, len(jx0))
	for i := range r {
		r[i] = jx0[i] + z[i] - f.h0[i]
	}

	jt, err := matrix.Transpose(f.jac)
	if err != nil {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: %w", err)
	}
	tmp, err := matrix.Mul(jt, lambdaM)
	if err != nil {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: %w", err)
	}
	lambdaJoint, err := matrix.Mul(tmp, f.jac)
	if err != nil {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: %w", err)
	}
	etaJoint, err := matrix.MatVec(tmp, r)
	if err != nil {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: %w", err)
	}
	lambdaDense, ok := lambdaJoint.(*matrix.Dense)
	if !ok {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: expected *matrix.Dense, got %T", lambdaJoint)
	}
	if len(etaJoint) != jointDim {
		return gaussian.Gaussian{}, fmt.Errorf("factorgraph: buildJointGaussian: %w", ErrDimensionMismatch)
	}

	return gaussian.FromCanonical(etaJoint, lambdaDense)
}

func anyNonFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}

	return false
}
