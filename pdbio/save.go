package pdbio

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/andrew-torda/pdbtree/structure"
	"github.com/andrew-torda/pdbtree/zwrap"
)

// Numbering says where the atom serial numbers in the output come from.
type Numbering byte

const (
	ByChain Numbering = iota // start at 1 again in every chain
	ByModel                  // run 1..N across a whole model
	Keep                     // use the numbers stored on the atoms
)

// Options control one call to Save. The zero value gives the usual
// behaviour: everything written, numbering per chain, END at the end.
type Options struct {
	Select    Select    // which entities to write, nil means all
	Numbering Numbering // where serial numbers come from
	SkipEnd   bool      // leave out the final END record
}

// A PDBIO writes one structure. Point it at a tree with SetStructure
// (or one of the narrower Set functions) and call Save. If multiModel
// is set, MODEL and ENDMDL records are written even for a single model.
type PDBIO struct {
	structure  *structure.Structure
	multiModel bool
	lg         *log.Logger
}

// NewPDBIO gives us a writer which logs nowhere.
func NewPDBIO(multiModel bool) *PDBIO {
	lg, _ := structure.LogWhere("")
	return &PDBIO{multiModel: multiModel, lg: lg}
}

// SetLogger replaces the destination for diagnostics.
func (p *PDBIO) SetLogger(lg *log.Logger) { p.lg = lg }

// SetStructure sets the tree the next Save will walk.
func (p *PDBIO) SetStructure(s *structure.Structure) { p.structure = s }

// SetModel wraps a bare model in a throwaway structure and writes that.
func (p *PDBIO) SetModel(m *structure.Model) {
	s := structure.NewStructure("pdb")
	s.Add(m)
	p.structure = s
}

// SetChain does the same for a bare chain.
func (p *PDBIO) SetChain(c *structure.Chain) {
	m := structure.NewModel(0, 0)
	m.Add(c)
	p.SetModel(m)
}

// SetResidue does the same for a single residue. It is put in a chain
// called A.
func (p *PDBIO) SetResidue(r *structure.Residue) {
	c := structure.NewChain("A")
	c.Add(r)
	p.SetChain(c)
}

// SaveFile writes the structure to a named file, which is created,
// written and closed here. A name ending in .gz gets compressed on the
// way out.
func (p *PDBIO) SaveFile(fname string, opts *Options) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	var wc io.WriteCloser = fp
	if strings.HasSuffix(fname, ".gz") {
		wc = zwrap.NewWriter(fp)
	}
	err = p.Save(wc, opts)
	if e := wc.Close(); err == nil {
		err = e
	}
	return err
}

// Save walks the tree and writes one record per accepted atom, with
// TER after each chain that produced output, MODEL and ENDMDL around
// each model when there is more than one, and usually END at the end.
// A format problem (unknown element, broken occupancy, a record that
// does not come out at 80 columns) stops the walk with an error, and
// whatever was already written should not be trusted.
func (p *PDBIO) Save(w io.Writer, opts *Options) error {
	if p.structure == nil {
		return fmt.Errorf("no structure to write")
	}
	if opts == nil {
		opts = &Options{}
	}
	sel := opts.Select
	if sel == nil {
		sel = SelectAll{}
	}
	bw := bufio.NewWriter(w)
	multi := p.structure.NModels() > 1 || p.multiModel

	atomNumber := 1
	for _, model := range p.structure.Models() {
		if !sel.AcceptModel(model) {
			continue
		}
		if opts.Numbering == ByModel {
			atomNumber = 1
		}
		modelAtoms := false // no ENDMDL for a model that wrote nothing
		if multi {
			fmt.Fprintf(bw, "MODEL      %d\n", model.Serial)
		}
		for _, chain := range model.Chains() {
			if !sel.AcceptChain(chain) {
				continue
			}
			if opts.Numbering == ByChain {
				atomNumber = 1
			}
			chainAtoms := false // no TER for a chain that wrote nothing
			for _, residue := range chain.Unpacked() {
				if !sel.AcceptResidue(residue) {
					continue
				}
				for _, atom := range residue.Unpacked() {
					if !sel.AcceptAtom(atom) {
						continue
					}
					chainAtoms, modelAtoms = true, true
					if opts.Numbering == Keep {
						atomNumber = atom.Serial
					}
					line, err := p.atomLine(atom, residue, chain.ID, atomNumber)
					if err != nil {
						return err
					}
					bw.WriteString(line)
					atomNumber++
				}
			}
			if chainAtoms {
				bw.WriteString("TER\n")
			}
		}
		if multi && modelAtoms {
			bw.WriteString("ENDMDL\n")
		}
	}
	if !opts.SkipEnd {
		bw.WriteString("END\n")
	}
	return bw.Flush()
}

// Write is the short way to save a whole structure to a file. With
// includeDisordered all altloc variants appear in the output; without
// it, disorder is collapsed to the "A" locations.
func Write(s *structure.Structure, fname string, includeDisordered bool) error {
	p := NewPDBIO(false)
	p.SetStructure(s)
	opts := &Options{}
	if !includeDisordered {
		opts.Select = NewNotDisordered(nil)
	}
	return p.SaveFile(fname, opts)
}
