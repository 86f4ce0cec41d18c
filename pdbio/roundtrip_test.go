// Round trip tests. We build a tree, write it out, read our own
// records back in and check the rebuilt tree matches. The decoding
// here is test scaffolding only; in real use the records come from a
// proper file reader.
package pdbio_test

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/edsrzf/mmap-go"

	. "github.com/andrew-torda/pdbtree/pdbio"
	"github.com/andrew-torda/pdbtree/structure"
	"github.com/andrew-torda/pdbtree/zwrap"
)

// slurp reads a whole output file back, through the mmap for a plain
// file and through the gzip wrapper for a compressed one.
func slurp(t *testing.T, fname string) []byte {
	t.Helper()
	fp, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if strings.HasSuffix(fname, ".gz") {
		rdr, err := zwrap.WrapMaybe(fp)
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rdr)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer mm.Unmap()
	return append([]byte{}, mm...)
}

// rebuild turns our own records back into a tree.
func rebuild(t *testing.T, data []byte, id string) *structure.Structure {
	t.Helper()
	b := structure.NewStructureBuilder()
	b.InitStructure(id)
	b.InitSeg("    ")
	nModel := 0
	modelOpen := false
	curChain := ""
	curRes := ""
	for i, l := range strings.Split(string(data), "\n") {
		b.SetLineCounter(i + 1)
		switch {
		case strings.HasPrefix(l, "MODEL"):
			serial, err := strconv.Atoi(strings.TrimSpace(l[5:]))
			if err != nil {
				t.Fatal("bad MODEL record:", l)
			}
			b.InitModel(nModel, serial)
			nModel++
			modelOpen = true
			curChain, curRes = "", ""
		case strings.HasPrefix(l, "ENDMDL"):
			modelOpen = false
		case strings.HasPrefix(l, "ATOM") || strings.HasPrefix(l, "HETATM"):
			if len(l) < 80 {
				t.Fatal("short atom record:", l)
			}
			if !modelOpen {
				b.InitModel(nModel, 1)
				nModel++
				modelOpen = true
				curChain, curRes = "", ""
			}
			chain := strings.TrimSpace(l[20:22])
			if chain != curChain {
				b.InitChain(chain)
				curChain, curRes = chain, ""
			}
			resname := strings.TrimSpace(l[17:20])
			field := byte(' ')
			if strings.HasPrefix(l, "HETATM") {
				if resname == "HOH" || resname == "WAT" {
					field = 'W'
				} else {
					field = 'H'
				}
			}
			seq, err := strconv.Atoi(strings.TrimSpace(l[22:26]))
			if err != nil {
				t.Fatal("bad residue number:", l)
			}
			resKey := string(field) + resname + l[22:27]
			if resKey != curRes {
				if err := b.InitResidue(resname, field, seq, l[26]); err != nil {
					t.Fatal(err)
				}
				curRes = resKey
			}
			var xyz [3]float64
			for j := range xyz {
				xyz[j], err = strconv.ParseFloat(
					strings.TrimSpace(l[30+8*j:38+8*j]), 64)
				if err != nil {
					t.Fatal("bad coordinate:", l)
				}
			}
			occ := structure.MissingOccupancy
			if s := strings.TrimSpace(l[54:60]); s != "" {
				if occ, err = strconv.ParseFloat(s, 64); err != nil {
					t.Fatal("bad occupancy:", l)
				}
			}
			bfac, err := strconv.ParseFloat(strings.TrimSpace(l[60:66]), 64)
			if err != nil {
				t.Fatal("bad B factor:", l)
			}
			serial, err := strconv.Atoi(strings.TrimSpace(l[6:11]))
			if err != nil {
				t.Fatal("bad serial number:", l)
			}
			fullname := l[12:16]
			b.InitAtom(strings.TrimSpace(fullname),
				structure.Xyz{X: float32(xyz[0]), Y: float32(xyz[1]), Z: float32(xyz[2])},
				bfac, occ, l[16], fullname, serial,
				strings.TrimSpace(l[76:78]))
		}
	}
	return b.Structure()
}

// ordinaryStructure builds something with a bit of everything except
// disorder: two chains, a water and a ligand.
func ordinaryStructure() *structure.Structure {
	b := structure.NewStructureBuilder()
	b.InitStructure("orig")
	b.InitModel(0, 1)
	b.InitSeg("    ")
	b.InitChain("A")
	b.InitResidue("GLY", ' ', 1, ' ')
	b.InitAtom("N", structure.Xyz{X: 11.104, Y: 6.134, Z: -6.504}, 7.38, 1, ' ', " N  ", 1, "N")
	b.InitAtom("CA", structure.Xyz{X: 9.967, Y: 6.197, Z: -5.577}, 7.9, 1, ' ', " CA ", 2, "C")
	b.InitAtom("C", structure.Xyz{X: 10.031, Y: 5.134, Z: -4.466}, 7.23, 1, ' ', " C  ", 3, "C")
	b.InitResidue("THR", ' ', 2, 'A') // insertion code
	b.InitAtom("N", structure.Xyz{X: 9.199, Y: 4.109, Z: -4.533}, 8.82, 1, ' ', " N  ", 4, "N")
	b.InitAtom("OG1", structure.Xyz{X: 8.205, Y: 2.516, Z: -2.296}, 10.61, 0.68, ' ', " OG1", 5, "O")
	b.InitChain("B")
	b.InitResidue("ALA", ' ', 1, ' ')
	b.InitAtom("CA", structure.Xyz{X: -0.283, Y: 1.503, Z: 2.914}, 12.4, 1, ' ', " CA ", 6, "C")
	b.InitResidue("FUC", 'H', 90, ' ')
	b.InitAtom("C1", structure.Xyz{X: 3.431, Y: -2.979, Z: 1.06}, 19.0, 1, ' ', " C1 ", 7, "C")
	b.InitResidue("HOH", 'W', 101, ' ')
	b.InitAtom("O", structure.Xyz{X: 1.208, Y: -7.236, Z: 0.319}, 25.4, 1, ' ', " O  ", 8, "O")
	return b.Structure()
}

func TestRoundTrip(t *testing.T) {
	s1 := ordinaryStructure()
	fname := filepath.Join(t.TempDir(), "out.pdb")
	p := NewPDBIO(false)
	p.SetStructure(s1)
	if err := p.SaveFile(fname, nil); err != nil {
		t.Fatal(err)
	}
	data := slurp(t, fname)
	s2 := rebuild(t, data, "copy")
	if !structure.AllEqual(s1, s2, 1e-2) {
		t.Error("rebuilt structure differs from the original")
	}
	// writing the rebuilt tree must give back the same bytes
	fname2 := filepath.Join(t.TempDir(), "out2.pdb")
	p.SetStructure(s2)
	if err := p.SaveFile(fname2, nil); err != nil {
		t.Fatal(err)
	}
	if string(slurp(t, fname2)) != string(data) {
		t.Error("second serialization differs from the first")
	}
}

func TestRoundTripMultiModel(t *testing.T) {
	b := structure.NewStructureBuilder()
	b.InitStructure("nmr")
	b.InitSeg("    ")
	for m := 0; m < 3; m++ {
		b.InitModel(m, m+1)
		b.InitChain("A")
		b.InitResidue("GLY", ' ', 1, ' ')
		b.InitAtom("CA", structure.Xyz{X: float32(m), Y: 1, Z: 2}, 10, 1, ' ', " CA ", 1, "C")
	}
	s1 := b.Structure()
	fname := filepath.Join(t.TempDir(), "nmr.pdb")
	p := NewPDBIO(false)
	p.SetStructure(s1)
	if err := p.SaveFile(fname, nil); err != nil {
		t.Fatal(err)
	}
	s2 := rebuild(t, slurp(t, fname), "copy")
	if s2.NModels() != 3 {
		t.Fatal("expected 3 models, got", s2.NModels())
	}
	if !structure.AllEqual(s1, s2, 1e-2) {
		t.Error("rebuilt multi model structure differs")
	}
}

func TestSaveFileGzip(t *testing.T) {
	s := ordinaryStructure()
	dir := t.TempDir()
	plain := filepath.Join(dir, "out.pdb")
	zipped := filepath.Join(dir, "out.pdb.gz")
	p := NewPDBIO(false)
	p.SetStructure(s)
	if err := p.SaveFile(plain, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.SaveFile(zipped, nil); err != nil {
		t.Fatal(err)
	}
	if string(slurp(t, plain)) != string(slurp(t, zipped)) {
		t.Error("compressed output does not match plain output")
	}
}

func TestWrite(t *testing.T) {
	s := disorderedStructure()
	fname := filepath.Join(t.TempDir(), "collapsed.pdb")
	if err := Write(s, fname, false); err != nil {
		t.Fatal(err)
	}
	out := string(slurp(t, fname))
	if strings.Count(out, "\nATOM")+1 != 2 {
		t.Error("collapsed output should hold two atoms:\n" + out)
	}
}
