package geometry

// Point is a position in data coordinates: X in base pairs (after centering),
// Y the track index.
type Point struct {
	X, Y float64
}

// Pair holds the left and right endpoints of a match on one track.
type Pair struct {
	Left, Right Point
}

// NewPair builds the pair for the half-open interval [left, right) on track.
func NewPair(track int, left, right float64) Pair {
	y := float64(track)
	return Pair{Left: Point{left, y}, Right: Point{right, y}}
}

// Polygon is a closed outline. The closing edge from the last vertex back to
// the first is implicit.
type Polygon []Point

// Tag selects the fill color of a ribbon.
type Tag uint8

const (
	Normal   Tag = iota // base color
	Inverted            // strand-change crossing
)

func (t Tag) String() string {
	if t == Inverted {
		return "inverted"
	}
	return "normal"
}

// Ribbon is one filled outline and its color tag.
type Ribbon struct {
	Outline Polygon
	Tag     Tag
}

// FromPairs builds the ribbon outline for pairs given in ascending track
// order: the left endpoints top to bottom, then the right endpoints bottom to
// top. It panics when fewer than two pairs are given.
func FromPairs(pairs []Pair) Polygon {
	if len(pairs) < 2 {
		panic("geometry: ribbon needs at least two point pairs")
	}
	out := make(Polygon, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, p.Left)
	}
	for i := len(pairs) - 1; i >= 0; i-- {
		out = append(out, pairs[i].Right)
	}
	return out
}
