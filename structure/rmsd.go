package structure

import (
	"errors"
	"fmt"
	"math"

	"github.com/andrew-torda/matrix"
)

// CaCoords collects the alpha carbon of each residue of a chain into an
// n x 3 matrix. Residues without a CA (waters, ligands) are skipped, as
// are extra altloc variants, so each residue contributes one row at most.
func CaCoords(c *Chain) *matrix.FMatrix2d {
	tmp := make([]Xyz, 0, c.NResidues())
	for _, r := range c.Residues() {
		if a := r.Atom("CA"); a != nil {
			tmp = append(tmp, a.Coord)
		}
	}
	m := matrix.NewFMatrix2d(len(tmp), 3)
	for i, x := range tmp {
		m.Mat[i][0] = x.X
		m.Mat[i][1] = x.Y
		m.Mat[i][2] = x.Z
	}
	return m
}

// RMSD is the root mean square deviation between two coordinate sets,
// row for row, without superposition. The matrices must be the same
// size and not empty.
func RMSD(a, b *matrix.FMatrix2d) (float64, error) {
	nr, nc := a.Size()
	nr2, nc2 := b.Size()
	if nr != nr2 || nc != nc2 {
		return 0, fmt.Errorf("coordinate sets differ in size, %d x %d against %d x %d",
			nr, nc, nr2, nc2)
	}
	if nr == 0 {
		return 0, errors.New("no coordinates to compare")
	}
	var sum float64
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			d := float64(a.Mat[i][j] - b.Mat[i][j])
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(nr)), nil
}
