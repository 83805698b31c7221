package system

import (
	"io"
	"log"
	"sort"

	"github.com/lixenwraith/escape-room/parameter"
	"github.com/lixenwraith/escape-room/vmath"
)

// Glyph is one draggable equation fragment in chalkboard-local coordinates
type Glyph struct {
	ID string
	X  float64
	Y  float64
}

// OrderChecker watches draggable glyphs and completes its challenge once their x order
// matches the lexicographic order of their ids
type OrderChecker struct {
	challengeID string
	completer   Completer
	logger      *log.Logger

	layout    []Glyph
	glyphs    []Glyph
	index     map[string]int
	positions map[string]float64

	inOrder bool
	solved  bool
	plane   vmath.Plane
}

// OrderOption configures an OrderChecker
type OrderOption func(*OrderChecker)

// WithOrderLogger routes solve logs, nil discards
func WithOrderLogger(l *log.Logger) OrderOption {
	return func(o *OrderChecker) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		o.logger = l
	}
}

// NewOrderChecker registers layout as the expected glyph set and reports each starting position
// Duplicate ids in layout keep the first entry
func NewOrderChecker(challengeID string, completer Completer, layout []Glyph, opts ...OrderOption) *OrderChecker {
	o := &OrderChecker{
		challengeID: challengeID,
		completer:   completerOrNop(completer),
		logger:      log.Default(),
		index:       make(map[string]int, len(layout)),
		plane:       vmath.Plane{Normal: vmath.Vec3{0, 0, 1}, Constant: -parameter.ChalkboardZ},
	}
	for _, g := range layout {
		if _, dup := o.index[g.ID]; dup || g.ID == "" {
			continue
		}
		o.index[g.ID] = len(o.layout)
		o.layout = append(o.layout, g)
	}
	for _, opt := range opts {
		opt(o)
	}
	o.seed()
	return o
}

// EquationLayout is the chalkboard's starting arrangement
func EquationLayout() []Glyph {
	out := make([]Glyph, len(parameter.EquationGlyphs))
	for i, g := range parameter.EquationGlyphs {
		out[i] = Glyph{ID: g.ID, X: g.X, Y: parameter.GlyphRestY}
	}
	return out
}

// Update records x for id and re-evaluates the order
// Ids outside the expected set are ignored
func (o *OrderChecker) Update(id string, x float64) {
	i, ok := o.index[id]
	if !ok {
		return
	}
	o.glyphs[i].X = x
	o.positions[id] = x
	o.evaluate()
}

// Drag projects a pointer ray onto the chalkboard and moves id to the hit point
// Returns false when the ray misses the board or id is unknown
func (o *OrderChecker) Drag(id string, ray vmath.Ray) bool {
	i, ok := o.index[id]
	if !ok {
		return false
	}
	hit, ok := vmath.IntersectPlane(ray, o.plane)
	if !ok {
		return false
	}
	o.glyphs[i].Y = vmath.Clamp(hit.Y()-parameter.ChalkboardHeight, -parameter.ChalkboardMaxY, parameter.ChalkboardMaxY)
	o.Update(id, vmath.Clamp(hit.X(), -parameter.ChalkboardMaxX, parameter.ChalkboardMaxX))
	return true
}

// Nudge moves id by dx along the board, clamped to the board edges
func (o *OrderChecker) Nudge(id string, dx float64) bool {
	i, ok := o.index[id]
	if !ok {
		return false
	}
	o.Update(id, vmath.Clamp(o.glyphs[i].X+dx, -parameter.ChalkboardMaxX, parameter.ChalkboardMaxX))
	return true
}

// InOrder reports whether the latest arrangement is ascending
func (o *OrderChecker) InOrder() bool {
	return o.inOrder
}

// Solved reports whether the challenge has been signalled this episode
func (o *OrderChecker) Solved() bool {
	return o.solved
}

// Glyphs returns a copy of the current glyph placements in layout order
func (o *OrderChecker) Glyphs() []Glyph {
	out := make([]Glyph, len(o.glyphs))
	copy(out, o.glyphs)
	return out
}

// IDs returns expected ids in layout order
func (o *OrderChecker) IDs() []string {
	out := make([]string, len(o.layout))
	for i, g := range o.layout {
		out[i] = g.ID
	}
	return out
}

// Reset restores the starting layout and re-arms the completion signal
func (o *OrderChecker) Reset() {
	o.solved = false
	o.seed()
}

func (o *OrderChecker) seed() {
	o.glyphs = make([]Glyph, len(o.layout))
	copy(o.glyphs, o.layout)
	o.positions = make(map[string]float64, len(o.layout))
	o.inOrder = false
	for _, g := range o.layout {
		o.Update(g.ID, g.X)
	}
}

func (o *OrderChecker) evaluate() {
	if len(o.positions) < len(o.layout) || len(o.layout) == 0 {
		o.inOrder = false
		return
	}

	ids := make([]string, 0, len(o.positions))
	for id := range o.positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	o.inOrder = true
	for i := 1; i < len(ids); i++ {
		if !(o.positions[ids[i]] > o.positions[ids[i-1]]) {
			o.inOrder = false
			break
		}
	}

	if o.inOrder && !o.solved {
		o.solved = true
		o.logger.Printf("glyphs in order, completing %s", o.challengeID)
		o.completer.CompleteChallenge(o.challengeID)
	}
}
