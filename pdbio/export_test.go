// Wrappers so the tests can poke at record formatting directly.
package pdbio

import "github.com/andrew-torda/pdbtree/structure"

func (p *PDBIO) AtomLine(a *structure.Atom, r *structure.Residue,
	chainID string, atomNumber int) (string, error) {
	return p.atomLine(a, r, chainID, atomNumber)
}

func PadName(fullname string) string { return padName(fullname) }
