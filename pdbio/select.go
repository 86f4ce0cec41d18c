// Package pdbio writes a structure tree back out as fixed column
// coordinate records. A Select decides which parts are written; the
// writer asks in the order model, chain, residue, atom, and never
// descends into something that was turned down.
package pdbio

import (
	"log"

	"github.com/andrew-torda/pdbtree/structure"
)

// A Select says, for each level of the tree, whether an entity should
// be written. Implementations may keep state and may even fix up the
// entities they accept, as NotDisordered does.
type Select interface {
	AcceptModel(*structure.Model) bool
	AcceptChain(*structure.Chain) bool
	AcceptResidue(*structure.Residue) bool
	AcceptAtom(*structure.Atom) bool
}

// SelectAll accepts everything. Embed it if you only want to override
// one of the four decisions.
type SelectAll struct{}

func (SelectAll) AcceptModel(*structure.Model) bool     { return true }
func (SelectAll) AcceptChain(*structure.Chain) bool     { return true }
func (SelectAll) AcceptResidue(*structure.Residue) bool { return true }
func (SelectAll) AcceptAtom(*structure.Atom) bool       { return true }

// NotDisordered collapses disorder while writing. Of a disordered atom
// position only the "A" variant survives, with its altloc blanked and
// its flag cleared, so the output looks like an ordinary structure. A
// disordered residue is kept if any of its atoms survives. What gets
// thrown away is logged.
type NotDisordered struct {
	SelectAll
	lg *log.Logger
}

// NewNotDisordered gives us the collapsing policy. A nil logger means
// the rejects are not reported anywhere.
func NewNotDisordered(lg *log.Logger) *NotDisordered {
	if lg == nil {
		lg, _ = structure.LogWhere("")
	}
	return &NotDisordered{lg: lg}
}

func (nd *NotDisordered) AcceptResidue(r *structure.Residue) bool {
	if !r.Disordered {
		return true
	}
	for _, a := range r.Unpacked() {
		if nd.AcceptAtom(a) {
			r.Disordered = false
			return true
		}
	}
	nd.lg.Printf("ignoring residue %s %v", r.Name, r.ID)
	return false
}

func (nd *NotDisordered) AcceptAtom(a *structure.Atom) bool {
	if !a.Disordered {
		return true
	}
	if a.AltLoc == 'A' {
		a.Disordered = false
		a.AltLoc = ' '
		return true
	}
	nd.lg.Printf("ignoring atom %s", a.Name)
	return false
}
