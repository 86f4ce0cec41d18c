package structure

import (
	"fmt"
	"math"
)

// MissingOccupancy marks an atom whose record had no occupancy. The
// writer turns it into a blank field. Anything else which is not a
// normal number (the infinities) is treated as a broken value.
var MissingOccupancy = math.NaN()

// Atom is a leaf of the tree. Name has the spaces stripped, FullName is
// the four column field exactly as it appeared, with padding. When two
// names collide only because of padding, the builder stores the padded
// form in Name as well.
type Atom struct {
	Name       string
	FullName   string
	Coord      Xyz
	BFactor    float64
	Occupancy  float64
	AltLoc     byte
	Serial     int
	Element    string
	Disordered bool
}

// NewAtom fills out an atom. altloc is ' ' for an ordinary atom.
func NewAtom(name string, coord Xyz, bfactor, occupancy float64,
	altloc byte, fullname string, serial int, element string) *Atom {
	return &Atom{
		Name:      name,
		FullName:  fullname,
		Coord:     coord,
		BFactor:   bfactor,
		Occupancy: occupancy,
		AltLoc:    altloc,
		Serial:    serial,
		Element:   element,
	}
}

func (a *Atom) String() string {
	return fmt.Sprintf("<Atom %s altloc '%c'>", a.Name, a.AltLoc)
}

// atomSlot is one position in a residue, either a plain atom or a set
// of altloc variants.
type atomSlot struct {
	plain *Atom
	dis   *DisorderedAtom
}

func (sl atomSlot) name() string {
	if sl.dis != nil {
		return sl.dis.Name
	}
	return sl.plain.Name
}

func (sl atomSlot) current() *Atom {
	if sl.dis != nil {
		return sl.dis.Selected()
	}
	return sl.plain
}

// DisorderedAtom is an atom position with more than one recorded
// location. The variant with the highest occupancy is selected.
type DisorderedAtom struct {
	Name     string
	variants []*Atom
	ndx      map[byte]int
	sel      int
}

// NewDisorderedAtom gives us an empty position with this name.
func NewDisorderedAtom(name string) *DisorderedAtom {
	return &DisorderedAtom{Name: name, ndx: make(map[byte]int)}
}

// Add puts another variant in. The atom is flagged as disordered and
// becomes the selected one if its occupancy beats the current pick.
// A missing occupancy never wins.
func (d *DisorderedAtom) Add(a *Atom) {
	a.Disordered = true
	d.ndx[a.AltLoc] = len(d.variants)
	d.variants = append(d.variants, a)
	if len(d.variants) == 1 {
		d.sel = 0
		return
	}
	cur := d.variants[d.sel].Occupancy
	if math.IsNaN(cur) || (!math.IsNaN(a.Occupancy) && a.Occupancy > cur) {
		d.sel = len(d.variants) - 1
	}
}

// Has says if we have a variant with this altloc.
func (d *DisorderedAtom) Has(altloc byte) bool { _, ok := d.ndx[altloc]; return ok }

// Selected returns the variant we currently point at.
func (d *DisorderedAtom) Selected() *Atom { return d.variants[d.sel] }

// Variants returns all variants in the order they were added.
func (d *DisorderedAtom) Variants() []*Atom { return d.variants }

// DisorderedResidue is a residue position holding point mutation
// variants, one per residue name.
type DisorderedResidue struct {
	ID       ResID
	variants []*Residue
	ndx      map[string]int
	sel      int
}

// NewDisorderedResidue gives us an empty position with this id.
func NewDisorderedResidue(id ResID) *DisorderedResidue {
	return &DisorderedResidue{ID: id, ndx: make(map[string]int)}
}

// Add puts another variant in and selects it. The residue is flagged
// disordered, so a writer collapsing disorder will spot it.
func (d *DisorderedResidue) Add(r *Residue) {
	r.Disordered = true
	d.ndx[r.Name] = len(d.variants)
	d.variants = append(d.variants, r)
	d.sel = len(d.variants) - 1
}

// Has says if we have a variant with this residue name.
func (d *DisorderedResidue) Has(resname string) bool { _, ok := d.ndx[resname]; return ok }

// Select makes the variant with this residue name the current one.
// It says if the name was found.
func (d *DisorderedResidue) Select(resname string) bool {
	i, ok := d.ndx[resname]
	if ok {
		d.sel = i
	}
	return ok
}

// Selected returns the variant we currently point at.
func (d *DisorderedResidue) Selected() *Residue { return d.variants[d.sel] }

// Variants returns all variants in the order they were added.
func (d *DisorderedResidue) Variants() []*Residue { return d.variants }
