package factorgraph

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// VariableSnapshot and FactorSnapshot capture the topology and per-kind
// metadata of a graph, independent of the live Model implementations that
// can't round-trip through text.

// FactorSnapshot is one factor's exported shape: its kind, active flag, the
// local variables it touches, and — for inter-robot factors — the peer
// address it reaches.
type FactorSnapshot struct {
	ID             FactorID
	Kind           Kind
	Active         bool
	LocalVariables []VariableID
	HasPeer        bool
	PeerGraph      FactorGraphID
	PeerVariable   VariableID
}

// Snapshot is a read-only topological view of a FactorGraph, the unit that
// Export/ParseDOT round-trip.
type Snapshot struct {
	Variables []VariableID
	Factors   []FactorSnapshot
}

// TakeSnapshot captures g's current topology.
func TakeSnapshot(g *FactorGraph) Snapshot {
	snap := Snapshot{Variables: g.Variables()}
	for _, fid := range g.Factors() {
		f := g.factors[fid]
		fs := FactorSnapshot{ID: fid, Kind: f.Kind(), Active: f.Active()}
		for _, s := range f.slots {
			if s.local {
				fs.LocalVariables = append(fs.LocalVariables, s.variableID)
			} else {
				fs.HasPeer = true
				fs.PeerGraph = s.peerGraph
				fs.PeerVariable = s.peerVariable
			}
		}
		snap.Factors = append(snap.Factors, fs)
	}

	return snap
}

func nodeColor(k Kind) string {
	switch k {
	case Dynamics:
		return "#8aadf4"
	case Obstacle:
		return "#ee99a0"
	case InterRobot:
		return "#a6da95"
	case Tracking:
		return "#f4a15a"
	default:
		return "#ffffff"
	}
}

const variableColor = "#eff1f5"

// Export renders snap as a small DOT-dialect digraph: variables are
// circles, factors are squares colored by kind, edges run from each local
// variable to the factors attached to it. Inter-robot factors additionally
// carry a peer="gN:vM" attribute since the peer endpoint has no node of
// its own in this graph.
func Export(snap Snapshot) string {
	var b strings.Builder
	b.WriteString("digraph factorgraph {\n")
	for _, vid := range snap.Variables {
		fmt.Fprintf(&b, "  v%d [shape=circle,color=\"%s\",label=\"v%d\"];\n", int(vid), variableColor, int(vid))
	}
	for _, fs := range snap.Factors {
		fmt.Fprintf(&b, "  f%d [shape=square,color=\"%s\",kind=%s,active=%t", int(fs.ID), nodeColor(fs.Kind), fs.Kind, fs.Active)
		if fs.HasPeer {
			fmt.Fprintf(&b, ",peer=\"g%d:v%d\"", int(fs.PeerGraph), int(fs.PeerVariable))
		}
		fmt.Fprintf(&b, ",label=\"f%d\"];\n", int(fs.ID))
	}
	for _, fs := range snap.Factors {
		for _, vid := range fs.LocalVariables {
			fmt.Fprintf(&b, "  v%d -> f%d;\n", int(vid), int(fs.ID))
		}
	}
	b.WriteString("}\n")

	return b.String()
}

var (
	nodeLineRE = regexp.MustCompile(`^\s*([vf])(\d+)\s*\[(.*)\];\s*$`)
	edgeLineRE = regexp.MustCompile(`^\s*v(\d+)\s*->\s*f(\d+);\s*$`)
	peerAttrRE = regexp.MustCompile(`^g(\d+):v(\d+)$`)
)

// ParseDOT parses the dialect Export produces back into a Snapshot.
// Unrecognized lines (the digraph header/footer, blank lines) are ignored;
// malformed node or edge lines return ErrGraphInvariant.
func ParseDOT(dot string) (Snapshot, error) {
	factors := make(map[FactorID]*FactorSnapshot)
	var varOrder []VariableID
	var factorOrder []FactorID
	edges := make(map[FactorID][]VariableID)

	for _, line := range strings.Split(dot, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "digraph factorgraph {" || trimmed == "}" {
			continue
		}
		if m := edgeLineRE.FindStringSubmatch(trimmed); m != nil {
			vid, err := parseID[VariableID](m[1])
			if err != nil {
				return Snapshot{}, err
			}
			fid, err := parseID[FactorID](m[2])
			if err != nil {
				return Snapshot{}, err
			}
			edges[fid] = append(edges[fid], vid)

			continue
		}
		m := nodeLineRE.FindStringSubmatch(trimmed)
		if m == nil {
			return Snapshot{}, fmt.Errorf("factorgraph: ParseDOT: %w: %q", ErrGraphInvariant, line)
		}
		kindChar, idStr, attrs := m[1], m[2], parseAttrs(m[3])
		switch kindChar {
		case "v":
			vid, err := parseID[VariableID](idStr)
			if err != nil {
				return Snapshot{}, err
			}
			varOrder = append(varOrder, vid)
		case "f":
			fid, err := parseID[FactorID](idStr)
			if err != nil {
				return Snapshot{}, err
			}
			kind, err := parseKind(attrs["kind"])
			if err != nil {
				return Snapshot{}, err
			}
			fs := &FactorSnapshot{ID: fid, Kind: kind, Active: attrs["active"] == "true"}
			if peer, ok := attrs["peer"]; ok {
				pm := peerAttrRE.FindStringSubmatch(peer)
				if pm == nil {
					return Snapshot{}, fmt.Errorf("factorgraph: ParseDOT: %w: bad peer attribute %q", ErrGraphInvariant, peer)
				}
				pg, err := parseID[FactorGraphID](pm[1])
				if err != nil {
					return Snapshot{}, err
				}
				pv, err := parseID[VariableID](pm[2])
				if err != nil {
					return Snapshot{}, err
				}
				fs.HasPeer, fs.PeerGraph, fs.PeerVariable = true, pg, pv
			}
			factors[fid] = fs
			factorOrder = append(factorOrder, fid)
		}
	}

	snap := Snapshot{Variables: varOrder}
	for _, fid := range factorOrder {
		fs := factors[fid]
		fs.LocalVariables = edges[fid]
		sort.Slice(fs.LocalVariables, func(i, j int) bool { return fs.LocalVariables[i] < fs.LocalVariables[j] })
		snap.Factors = append(snap.Factors, *fs)
	}

	return snap, nil
}

func parseAttrs(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range splitTopLevel(s) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		out[strings.TrimSpace(kv[0])] = strings.Trim(strings.TrimSpace(kv[1]), `"`)
	}

	return out
}

// splitTopLevel splits attrs on commas that fall outside a quoted value.
func splitTopLevel(s string) []string {
	var parts []string
	inQuotes := false
	start := 0
	for i, r := range s {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	return parts
}

func parseID[T ~int](s string) (T, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("factorgraph: ParseDOT: %w: %q is not an id", ErrGraphInvariant, s)
	}

	return T(n), nil
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "dynamics":
		return Dynamics, nil
	case "obstacle":
		return Obstacle, nil
	case "interrobot":
		return InterRobot, nil
	case "tracking":
		return Tracking, nil
	default:
		return 0, fmt.Errorf("factorgraph: ParseDOT: %w: unknown kind %q", ErrGraphInvariant, s)
	}
}
