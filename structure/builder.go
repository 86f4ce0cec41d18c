// The builder turns a stream of per atom records, already split into
// typed fields by whoever read the file, into the tree. It keeps
// pointers to whatever is currently open (structure, model, chain,
// residue) and sorts out the mess a file can throw at us: chains that
// stop and start again, residues listed twice, point mutations and
// atoms with alternative locations.
package structure

import (
	"fmt"
	"log"
)

// ConstructionError says a duplicate residue could not be wrapped up as
// a point mutation because the residue already in the chain had at
// least one atom with a blank altloc. The builder drops the offending
// residue and keeps going, so the caller can decide how bad this is.
type ConstructionError struct {
	ResName string
	ID      ResID
	Line    int
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("blank altlocs in duplicate residue %s %v at line %d",
		e.ResName, e.ID, e.Line)
}

// Counts are tallies of the funny things the builder saw. None of them
// stop the build, but a caller running permissively may want to look.
type Counts struct {
	Discontinuous int // chain id came back after another chain
	Redefined     int // residue listed again with the same name
	Renamed       int // atom names differing only in padding
	BlankAltloc   int // disordered atom arriving after a blank altloc one
	Dropped       int // residues lost to construction errors
}

// A StructureBuilder holds the state for one build. Make a fresh one
// per input stream. Two builders never share anything, so independent
// builds can run next to each other.
type StructureBuilder struct {
	structure *Structure
	model     *Model
	chain     *Chain
	residue   *Residue
	disres    *DisorderedResidue // set instead of residue for a mutation site
	segid     string
	line      int
	header    map[string]any
	counts    Counts
	lg        *log.Logger
}

// NewStructureBuilder gives us a builder which logs nowhere.
func NewStructureBuilder() *StructureBuilder {
	lg, _ := LogWhere("")
	return &StructureBuilder{lg: lg}
}

// SetLogger replaces the destination for diagnostics.
func (b *StructureBuilder) SetLogger(lg *log.Logger) { b.lg = lg }

// SetHeader stores the header mapping to be attached to the finished
// structure. We never look inside it.
func (b *StructureBuilder) SetHeader(h map[string]any) { b.header = h }

// SetLineCounter tells us which line of the input file the next records
// came from. Only used to make the diagnostics useful.
func (b *StructureBuilder) SetLineCounter(n int) { b.line = n }

// Counts returns the tallies collected so far.
func (b *StructureBuilder) Counts() Counts { return b.counts }

// InitStructure starts a new structure. Anything built before is gone.
func (b *StructureBuilder) InitStructure(id string) {
	b.structure = NewStructure(id)
	b.model = nil
	b.chain = nil
	b.residue = nil
	b.disres = nil
}

// InitModel starts a new model and makes it current.
func (b *StructureBuilder) InitModel(id, serial int) {
	b.model = NewModel(id, serial)
	b.structure.Add(b.model)
}

// InitChain makes the chain with this id current. If the model already
// has one, the file has a discontinuous chain. That is worth a log
// line, but it is not an error. We just open the old chain again.
func (b *StructureBuilder) InitChain(id string) {
	if b.model.Has(id) {
		b.chain = b.model.Chain(id)
		b.counts.Discontinuous++
		b.lg.Printf("chain %s is discontinuous at line %d", id, b.line)
		return
	}
	b.chain = NewChain(id)
	b.model.Add(b.chain)
}

// InitSeg sets the segment label given to residues created from now on.
func (b *StructureBuilder) InitSeg(segid string) { b.segid = segid }

// curResidue is where InitAtom puts atoms. For a mutation site it is
// the selected variant of the disordered residue.
func (b *StructureBuilder) curResidue() *Residue {
	if b.disres != nil {
		return b.disres.Selected()
	}
	return b.residue
}

// completelyDisordered says if every atom of the residue has a
// non-blank altloc. Only such a residue may become a mutation variant.
func completelyDisordered(r *Residue) bool {
	for _, a := range r.Unpacked() {
		if a.AltLoc == ' ' {
			return false
		}
	}
	return true
}

// InitResidue opens the residue the next atoms belong to. field is
// ' ' for ordinary residues, 'W' for water and 'H' for other hetero
// groups. A hetero or water record always gets a fresh residue. For an
// ordinary record whose id is already in the chain we have to decide
// whether this is the same residue listed again, a further variant of a
// known mutation site, or a new mutation. In the last case the residue
// already there must be completely disordered, or the file is broken:
// we return a ConstructionError, drop the residue and stay usable.
func (b *StructureBuilder) InitResidue(resname string, field byte, seq int, icode byte) error {
	var het string
	switch field {
	case 'W':
		het = "W"
	case 'H':
		het = "H_" + resname
	}
	id := ResID{Het: het, Seq: seq, ICode: icode}
	b.residue = nil
	b.disres = nil

	if het == "" && b.chain.Has(id) {
		return b.duplicateResidue(resname, id)
	}
	b.residue = NewResidue(id, resname, b.segid)
	b.chain.Add(b.residue)
	return nil
}

// duplicateResidue handles an ordinary residue whose id is already in
// the current chain. This only makes sense as a point mutation.
func (b *StructureBuilder) duplicateResidue(resname string, id ResID) error {
	b.lg.Printf("residue %v redefined at line %d", id, b.line)
	b.counts.Redefined++

	if dis := b.chain.DisorderedResidue(id); dis != nil {
		// A known mutation site. Reuse or add the variant.
		if !dis.Has(resname) {
			dis.Add(NewResidue(id, resname, b.segid))
		}
		dis.Select(resname)
		b.disres = dis
		return nil
	}

	dup := b.chain.Residue(id)
	if dup.Name == resname {
		// The same residue listed again. Nothing new to make.
		b.lg.Printf("residue %s %v already defined in chain %s with the same name at line %d",
			resname, id, b.chain.ID, b.line)
		b.residue = dup
		return nil
	}

	// A true point mutation. The residue already there should consist
	// only of atoms with altlocs. If not, dropping it would lose real
	// atoms, so we report and leave the position as it was.
	if !completelyDisordered(dup) {
		b.counts.Dropped++
		return &ConstructionError{ResName: resname, ID: id, Line: b.line}
	}
	b.chain.remove(id)
	dis := NewDisorderedResidue(id)
	b.chain.AddDisordered(dis)
	dis.Add(dup)
	dis.Add(NewResidue(id, resname, b.segid))
	b.disres = dis
	return nil
}

// InitAtom adds one atom to the current residue. If InitResidue failed
// there is no current residue and the atom is quietly thrown away.
// altloc is ' ' for an ordinary atom; anything else makes the position
// disordered.
func (b *StructureBuilder) InitAtom(name string, coord Xyz, bfactor, occupancy float64,
	altloc byte, fullname string, serial int, element string) {
	residue := b.curResidue()
	if residue == nil {
		return
	}
	// Two atoms can have names which differ only in their padding,
	// like "CA.." and ".CA." with dots for spaces. When the stripped
	// name is taken, use the padded form for the newcomer.
	if residue.Has(name) {
		if old := residue.Atom(name); old != nil && old.FullName != fullname {
			b.lg.Printf("atom names %q and %q differ only in spaces at line %d",
				old.FullName, fullname, b.line)
			b.counts.Renamed++
			name = fullname
		}
	}
	atom := NewAtom(name, coord, bfactor, occupancy, altloc, fullname, serial, element)
	if altloc == ' ' {
		residue.Add(atom)
		return
	}

	// The atom is disordered.
	if residue.Has(name) {
		if dis := residue.DisorderedAtom(name); dis != nil {
			dis.Add(atom)
			return
		}
		// Broken file. An atom with a blank altloc was already
		// written at this name. Wrap both up together.
		dup := residue.Atom(name)
		residue.remove(name)
		dis := NewDisorderedAtom(name)
		residue.AddDisordered(dis)
		dis.Add(atom)
		dis.Add(dup)
		residue.Disordered = true
		b.counts.BlankAltloc++
		b.lg.Printf("disordered atom %s found with blank altloc before line %d", name, b.line)
		return
	}
	dis := NewDisorderedAtom(name)
	residue.AddDisordered(dis)
	dis.Add(atom)
	residue.Disordered = true
}

// Structure hands back what we built, with the header attached.
func (b *StructureBuilder) Structure() *Structure {
	b.structure.Header = b.header
	return b.structure
}
