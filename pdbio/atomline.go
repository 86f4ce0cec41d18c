// Formatting of one ATOM or HETATM record. The column layout is fixed
// and old software counts on it, so every line is checked to be exactly
// 80 characters plus the newline before it leaves this file.
package pdbio

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrew-torda/pdbtree/structure"
)

const lineLen = 81 // 80 columns and the newline

// padName turns an atom name into its four column form. The stripped
// name goes left-justified into three columns, then the lot is pushed
// right into four. A one or two letter element like CA ends up with a
// leading space, a four character name fills the field.
func padName(fullname string) string {
	s := strings.TrimSpace(fullname)
	for len(s) < 3 {
		s = s + " "
	}
	for len(s) < 4 {
		s = " " + s
	}
	return s
}

// canonElement checks an element symbol against the weight table and
// returns it right-justified in two columns. The file may shout "FE",
// the table says "Fe".
func canonElement(element string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(element))
	if s == "" {
		return "  ", nil
	}
	t := s[:1] + strings.ToLower(s[1:])
	if _, ok := atomWeights[t]; !ok {
		return "", fmt.Errorf("unrecognised element %q", element)
	}
	if len(s) < 2 {
		s = " " + s
	}
	return s, nil
}

// occupancyField formats the occupancy. A missing value becomes a
// blank field, which is worth a warning. An infinite value means the
// record was broken and there is no sensible way to write it.
func (p *PDBIO) occupancyField(a *structure.Atom) (string, error) {
	if math.IsNaN(a.Occupancy) {
		p.lg.Printf("missing occupancy in atom %s written as blank", a.Name)
		return strings.Repeat(" ", 6), nil
	}
	if math.IsInf(a.Occupancy, 0) {
		return "", fmt.Errorf("invalid occupancy %v in atom %s", a.Occupancy, a.Name)
	}
	return fmt.Sprintf("%6.2f", a.Occupancy), nil
}

// bfactorField formats the B factor. If two decimal places do not fit
// in six columns, the fraction is dropped. That loses precision, but
// it is what the format has always done and readers expect it.
func bfactorField(a *structure.Atom) (string, error) {
	if math.IsNaN(a.BFactor) || math.IsInf(a.BFactor, 0) {
		return "", fmt.Errorf("invalid B factor %v in atom %s", a.BFactor, a.Name)
	}
	s := fmt.Sprintf("%6.2f", a.BFactor)
	if len(s) > 6 {
		s = s[:strings.Index(s, ".")]
	}
	return fmt.Sprintf("%-6s", s), nil
}

// atomLine builds one complete record. The residue supplies the tag
// (ATOM or HETATM), name, id and segment; the chain id and the running
// atom number come from the caller.
func (p *PDBIO) atomLine(a *structure.Atom, r *structure.Residue,
	chainID string, atomNumber int) (string, error) {
	tag := "ATOM  "
	if r.ID.Het != "" {
		tag = "HETATM"
	}
	element, err := canonElement(a.Element)
	if err != nil {
		return "", err
	}
	occ, err := p.occupancyField(a)
	if err != nil {
		return "", err
	}
	bfac, err := bfactorField(a)
	if err != nil {
		return "", err
	}
	const charge = "  "
	line := fmt.Sprintf("%s%5d %s%c%3s%2s%4d%c   %8.3f%8.3f%8.3f%s%s%7s%5s%s\n",
		tag, atomNumber, padName(a.FullName), a.AltLoc, r.Name, chainID,
		r.ID.Seq, r.ID.ICode,
		a.Coord.X, a.Coord.Y, a.Coord.Z,
		occ, bfac, r.SegID, element, charge)
	if len(line) != lineLen {
		return "", fmt.Errorf("atom record came out %d characters, not %d: %q",
			len(line)-1, lineLen-1, strings.TrimRight(line, "\n"))
	}
	return line, nil
}
