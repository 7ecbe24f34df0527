package paramsearch

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pexplore-go/paramsearch/pkg/utils"
)

// Point is an integer-coordinate element of a configured search space. It
// is a small value type: copy it freely, never share it by reference
// across goroutines (§9 "Ownership of points").
type Point struct {
	coords []int
}

// NewPoint builds a Point from coordinates, taken by value.
func NewPoint(coords ...int) Point {
	c := make([]int, len(coords))
	copy(c, coords)
	return Point{coords: c}
}

// Coordinates returns a copy of the point's coordinates.
func (p Point) Coordinates() []int {
	c := make([]int, len(p.coords))
	copy(c, p.coords)
	return c
}

// Dim returns the number of coordinates.
func (p Point) Dim() int {
	return len(p.coords)
}

// Compare returns -1, 0, or 1 comparing p to other lexicographically over
// coordinates.
func (p Point) Compare(other Point) int {
	n := len(p.coords)
	if len(other.coords) < n {
		n = len(other.coords)
	}
	for i := 0; i < n; i++ {
		if p.coords[i] < other.coords[i] {
			return -1
		}
		if p.coords[i] > other.coords[i] {
			return 1
		}
	}
	switch {
	case len(p.coords) < len(other.coords):
		return -1
	case len(p.coords) > len(other.coords):
		return 1
	default:
		return 0
	}
}

// Equal reports coordinate-wise equality.
func (p Point) Equal(other Point) bool {
	return p.Compare(other) == 0
}

// Key returns a string uniquely identifying the point's coordinates,
// suitable for use as a map key when deduplicating point sets.
func (p Point) Key() string {
	var b strings.Builder
	for i, c := range p.coords {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", c)
	}
	return b.String()
}

func (p Point) String() string {
	return "(" + p.Key() + ")"
}

// Dimension describes one named, bounded integer axis of a search space.
type Dimension struct {
	Name string
	Min  int
	Max  int
}

// Size returns the number of integer values this dimension admits.
func (d Dimension) Size() int {
	if d.Max < d.Min {
		return 0
	}
	return d.Max - d.Min + 1
}

// SearchSpace is the configuration subsystem's contract with the engine
// (§6.1): it supplies the initial point, the total point count, and
// perturbation. No external library in this retrieval set provides an
// integer-lattice search-space abstraction, so it is implemented here as
// the engine's one in-repo model of that "external collaborator".
type SearchSpace struct {
	dims []Dimension
}

// NewSearchSpace builds a SearchSpace from its dimensions. Dimensions with
// Max < Min are rejected.
func NewSearchSpace(dims ...Dimension) (*SearchSpace, error) {
	for _, d := range dims {
		if d.Max < d.Min {
			return nil, fmt.Errorf("paramsearch: dimension %q has max %d < min %d", d.Name, d.Max, d.Min)
		}
	}
	cp := make([]Dimension, len(dims))
	copy(cp, dims)
	return &SearchSpace{dims: cp}, nil
}

// Dimensions returns a copy of the space's dimensions, in declared order.
func (s *SearchSpace) Dimensions() []Dimension {
	cp := make([]Dimension, len(s.dims))
	copy(cp, s.dims)
	return cp
}

// TotalPoints returns the cardinality of the lattice, the product of each
// dimension's size.
func (s *SearchSpace) TotalPoints() int {
	total := 1
	for _, d := range s.dims {
		total *= d.Size()
	}
	return total
}

// InitialPoint returns the midpoint of every dimension's range, rounded
// down — a deterministic, reproducible starting point for exploration.
func (s *SearchSpace) InitialPoint() Point {
	coords := make([]int, len(s.dims))
	for i, d := range s.dims {
		coords[i] = d.Min + (d.Max-d.Min)/2
	}
	return NewPoint(coords...)
}

// Clamp clips p's coordinates into the space's bounds, dimension by
// dimension.
func (s *SearchSpace) Clamp(p Point) Point {
	coords := p.Coordinates()
	for i, d := range s.dims {
		if i >= len(coords) {
			break
		}
		coords[i] = utils.Clamp(coords[i], d.Min, d.Max)
	}
	return NewPoint(coords...)
}

// contains reports whether p lies within the space's bounds.
func (s *SearchSpace) contains(p Point) bool {
	coords := p.Coordinates()
	if len(coords) != len(s.dims) {
		return false
	}
	for i, d := range s.dims {
		if coords[i] < d.Min || coords[i] > d.Max {
			return false
		}
	}
	return true
}

// unitNeighbors returns every point at Hamming-like distance 1 from p that
// remains inside the space: p with one coordinate shifted by +1 or -1.
func (s *SearchSpace) unitNeighbors(p Point) []Point {
	coords := p.Coordinates()
	var out []Point
	for i := range coords {
		for _, delta := range [2]int{-1, 1} {
			cand := make([]int, len(coords))
			copy(cand, coords)
			cand[i] += delta
			cp := NewPoint(cand...)
			if s.contains(cp) {
				out = append(out, cp)
			}
		}
	}
	return out
}

// RandomShifted returns n perturbed neighbours of p, distinct from each
// other and from p, at coordinate distance 1 where the space permits
// (§6.1, §3 "random_shifted"). When fewer than n unit neighbours exist the
// remainder is filled by cycling the available neighbours (or, if there
// are none at all, by repeating p itself) — the search space is treated as
// tolerant of duplicate seeding rather than erroring, since seeding the
// initial population is best-effort.
func (s *SearchSpace) RandomShifted(p Point, n int, rng *rand.Rand) []Point {
	if n <= 0 {
		return nil
	}
	neighbors := s.unitNeighbors(p)
	rng.Shuffle(len(neighbors), func(i, j int) { neighbors[i], neighbors[j] = neighbors[j], neighbors[i] })

	seen := map[string]bool{p.Key(): true}
	out := make([]Point, 0, n)
	for _, cand := range neighbors {
		if len(out) >= n {
			break
		}
		if seen[cand.Key()] {
			continue
		}
		seen[cand.Key()] = true
		out = append(out, cand)
	}
	// Not enough distinct unit neighbours to fill the population: cycle
	// through whatever we found, or fall back to p when the space has no
	// room to shift at all (e.g. a fully-degenerate singleton dimension).
	source := out
	if len(source) == 0 {
		source = []Point{p}
	}
	for i := 0; len(out) < n; i++ {
		out = append(out, source[i%len(source)])
	}
	return out
}

// Configuration is a mapping from named search-space dimensions to fixed
// values, singleton when every property has been pinned to one value
// (§6.1, GLOSSARY).
type Configuration struct {
	space  *SearchSpace
	values map[string]int
}

// NewConfiguration builds a Configuration bound to space with no
// properties fixed yet.
func NewConfiguration(space *SearchSpace) *Configuration {
	return &Configuration{space: space, values: make(map[string]int)}
}

// IsSingleton reports whether every dimension in the bound space has been
// pinned to exactly one value.
func (c *Configuration) IsSingleton() bool {
	if c.space == nil {
		return true
	}
	for _, d := range c.space.dims {
		if _, ok := c.values[d.Name]; !ok {
			return false
		}
	}
	return true
}

// Project fixes every dimension to point's corresponding coordinate,
// returning a new singleton Configuration (§6.1 "project(point) →
// singleton configuration").
func (c *Configuration) Project(p Point) *Configuration {
	coords := p.Coordinates()
	values := make(map[string]int, len(coords))
	for i, d := range c.space.Dimensions() {
		if i < len(coords) {
			values[d.Name] = coords[i]
		}
	}
	return &Configuration{space: c.space, values: values}
}

// Value returns the fixed value of a named dimension and whether it has
// been pinned.
func (c *Configuration) Value(name string) (int, bool) {
	v, ok := c.values[name]
	return v, ok
}
