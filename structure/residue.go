// Residues and chains. A chain does not hold residues directly. Each
// position is a slot which is either a plain residue or a disordered
// one holding point mutation variants. Anyone walking the tree sees the
// selected variant unless they ask for the unpacked list.
package structure

import "fmt"

// ResID identifies a residue within a chain. Het is "" for ordinary
// residues, "W" for waters and "H_" plus the residue name for other
// hetero groups. ICode is the insertion code, ' ' if there is none.
type ResID struct {
	Het   string
	Seq   int
	ICode byte
}

func (id ResID) String() string {
	return fmt.Sprintf("('%s', %d, '%c')", id.Het, id.Seq, id.ICode)
}

// Residue is one residue, holding its atoms in file order. Disordered
// is set as soon as one of its atoms has an alternative location, or
// when the residue itself is a point mutation variant.
type Residue struct {
	ID         ResID
	Name       string
	SegID      string
	Disordered bool
	slots      []atomSlot
	ndx        map[string]int
}

// NewResidue gives us an empty residue.
func NewResidue(id ResID, name, segid string) *Residue {
	return &Residue{ID: id, Name: name, SegID: segid, ndx: make(map[string]int)}
}

// Add puts a plain atom at the end of the residue.
func (r *Residue) Add(a *Atom) {
	r.ndx[a.Name] = len(r.slots)
	r.slots = append(r.slots, atomSlot{plain: a})
}

// AddDisordered puts a disordered atom position at the end of the residue.
func (r *Residue) AddDisordered(d *DisorderedAtom) {
	r.ndx[d.Name] = len(r.slots)
	r.slots = append(r.slots, atomSlot{dis: d})
}

// remove takes the atom position with this name out of the residue.
// Everything after it moves up one place.
func (r *Residue) remove(name string) {
	i, ok := r.ndx[name]
	if !ok {
		return
	}
	r.slots = append(r.slots[:i], r.slots[i+1:]...)
	delete(r.ndx, name)
	for j := i; j < len(r.slots); j++ {
		r.ndx[r.slots[j].name()] = j
	}
}

// Has says if there is an atom position with this name.
func (r *Residue) Has(name string) bool { _, ok := r.ndx[name]; return ok }

// Atom returns the atom with the given name, or nil. For a disordered
// position we get the selected variant.
func (r *Residue) Atom(name string) *Atom {
	if i, ok := r.ndx[name]; ok {
		return r.slots[i].current()
	}
	return nil
}

// DisorderedAtom returns the disordered position with this name, or nil
// if the position is absent or plain.
func (r *Residue) DisorderedAtom(name string) *DisorderedAtom {
	if i, ok := r.ndx[name]; ok {
		return r.slots[i].dis
	}
	return nil
}

// Atoms returns one atom per position, the selected variant where a
// position is disordered.
func (r *Residue) Atoms() []*Atom {
	ret := make([]*Atom, len(r.slots))
	for i, sl := range r.slots {
		ret[i] = sl.current()
	}
	return ret
}

// Unpacked returns every atom, with disordered positions expanded into
// their variants in the order they were added.
func (r *Residue) Unpacked() []*Atom {
	ret := make([]*Atom, 0, len(r.slots))
	for _, sl := range r.slots {
		if sl.dis != nil {
			ret = append(ret, sl.dis.Variants()...)
		} else {
			ret = append(ret, sl.plain)
		}
	}
	return ret
}

// NAtoms says how many atom positions the residue has. Variants of a
// disordered position count once.
func (r *Residue) NAtoms() int { return len(r.slots) }

// Chain is a set of residue positions in file order.
type Chain struct {
	ID    string
	slots []resSlot
	ndx   map[ResID]int
}

// NewChain gives us an empty chain.
func NewChain(id string) *Chain {
	return &Chain{ID: id, ndx: make(map[ResID]int)}
}

// Add puts a plain residue at the end of the chain. On a key collision
// the old residue stays in the list, but lookups find the new one. This
// only happens for hetero groups, which we never try to merge.
func (c *Chain) Add(r *Residue) {
	c.ndx[r.ID] = len(c.slots)
	c.slots = append(c.slots, resSlot{plain: r})
}

// AddDisordered puts a disordered residue position at the end of the chain.
func (c *Chain) AddDisordered(d *DisorderedResidue) {
	c.ndx[d.ID] = len(c.slots)
	c.slots = append(c.slots, resSlot{dis: d})
}

// remove takes the residue position with this id out of the chain.
func (c *Chain) remove(id ResID) {
	i, ok := c.ndx[id]
	if !ok {
		return
	}
	c.slots = append(c.slots[:i], c.slots[i+1:]...)
	delete(c.ndx, id)
	for j := i; j < len(c.slots); j++ {
		c.ndx[c.slots[j].id()] = j
	}
}

// Has says if there is a residue position with this id.
func (c *Chain) Has(id ResID) bool { _, ok := c.ndx[id]; return ok }

// Residue returns the residue with the given id, or nil. For a
// disordered position we get the selected variant.
func (c *Chain) Residue(id ResID) *Residue {
	if i, ok := c.ndx[id]; ok {
		return c.slots[i].current()
	}
	return nil
}

// DisorderedResidue returns the disordered position with this id, or
// nil if the position is absent or plain.
func (c *Chain) DisorderedResidue(id ResID) *DisorderedResidue {
	if i, ok := c.ndx[id]; ok {
		return c.slots[i].dis
	}
	return nil
}

// Residues returns one residue per position, the selected variant where
// a position is disordered.
func (c *Chain) Residues() []*Residue {
	ret := make([]*Residue, len(c.slots))
	for i, sl := range c.slots {
		ret[i] = sl.current()
	}
	return ret
}

// Unpacked returns every residue, with disordered positions expanded
// into their variants in the order they were added.
func (c *Chain) Unpacked() []*Residue {
	ret := make([]*Residue, 0, len(c.slots))
	for _, sl := range c.slots {
		if sl.dis != nil {
			ret = append(ret, sl.dis.Variants()...)
		} else {
			ret = append(ret, sl.plain)
		}
	}
	return ret
}

// NResidues says how many residue positions the chain has.
func (c *Chain) NResidues() int { return len(c.slots) }

// resSlot is one position in a chain. Exactly one of the two fields is
// set. This is the tag on our plain/disordered union.
type resSlot struct {
	plain *Residue
	dis   *DisorderedResidue
}

func (sl resSlot) id() ResID {
	if sl.dis != nil {
		return sl.dis.ID
	}
	return sl.plain.ID
}

func (sl resSlot) current() *Residue {
	if sl.dis != nil {
		return sl.dis.Selected()
	}
	return sl.plain
}
