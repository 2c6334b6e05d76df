package driver

import (
	"github.com/pkg/errors"
)

// latticeCoord addresses a detector by its row and column on a
// rectangular lattice, the way a surface-code or repetition-code patch
// is normally drawn. index converts it to the row-major node index
// UserGraph/matchgraph use everywhere else.
type latticeCoord struct {
	row, col int
}

func (c latticeCoord) index(width int) int { return c.row*width + c.col }

// NewRepetitionCodeGraph builds the UserGraph for a distance-d bit-flip
// repetition code: a single row of d nodes, each neighboring pair
// joined by an edge of the given weight that flips the single logical
// observable, with the two end nodes marked as boundary nodes via
// SetBoundary, so the edges into them become boundary edges of their
// inner neighbors.
//
// distance must be at least 2; a distance-1 code has no detectors to
// match against.
func NewRepetitionCodeGraph(distance int, edgeWeight, errorProbability float64) (*UserGraph, error) {
	if distance < 2 {
		return nil, errors.Errorf("driver: repetition code distance must be >= 2, got %d", distance)
	}

	ug := NewUserGraph()
	for col := 0; col < distance-1; col++ {
		a := latticeCoord{0, col}.index(distance)
		b := latticeCoord{0, col + 1}.index(distance)
		ug.AddEdge(a, b, []int{0}, edgeWeight, errorProbability)
	}
	ug.SetBoundary([]int{0, distance - 1})

	return ug, nil
}

// NewSurfaceCodeGraph builds the UserGraph for a distance-d rotated
// surface code's X (or Z) detector lattice: a (d-1)xd grid of
// detectors with unit-step nearest-neighbor edges. The vertical edges
// running down column 0 flip observable 0, representing the logical
// operator string along that edge of the patch; every node on the
// grid's outer ring is marked as a boundary node via SetBoundary, so an
// edge from an interior node into the ring becomes a boundary edge and
// an edge between two ring nodes is dropped.
func NewSurfaceCodeGraph(distance int, edgeWeight, errorProbability float64) (*UserGraph, error) {
	if distance < 2 {
		return nil, errors.Errorf("driver: surface code distance must be >= 2, got %d", distance)
	}

	rows, cols := distance-1, distance
	ug := NewUserGraph()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			here := latticeCoord{row, col}.index(cols)
			if col+1 < cols {
				right := latticeCoord{row, col + 1}.index(cols)
				ug.AddEdge(here, right, nil, edgeWeight, errorProbability)
			}
			if row+1 < rows {
				down := latticeCoord{row + 1, col}.index(cols)
				var obs []int
				if col == 0 {
					obs = []int{0}
				}
				ug.AddEdge(here, down, obs, edgeWeight, errorProbability)
			}
		}
	}

	boundary := make([]int, 0, 2*rows+2*cols)
	for row := 0; row < rows; row++ {
		boundary = append(boundary, latticeCoord{row, 0}.index(cols), latticeCoord{row, cols - 1}.index(cols))
	}
	for col := 0; col < cols; col++ {
		boundary = append(boundary, latticeCoord{0, col}.index(cols), latticeCoord{rows - 1, col}.index(cols))
	}
	ug.SetBoundary(boundary)

	return ug, nil
}
