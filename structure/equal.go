package structure

import "math"

// floatEq compares within a tolerance. NaN equals NaN here, since a
// missing occupancy on both sides is a match.
func floatEq(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tol
}

func xyzEq(a, b Xyz, tol float64) bool {
	return floatEq(float64(a.X), float64(b.X), tol) &&
		floatEq(float64(a.Y), float64(b.Y), tol) &&
		floatEq(float64(a.Z), float64(b.Z), tol)
}

func atomEq(a, b *Atom, tol float64) bool {
	if a.Name != b.Name || a.AltLoc != b.AltLoc || a.Element != b.Element {
		return false
	}
	if !floatEq(a.BFactor, b.BFactor, tol) || !floatEq(a.Occupancy, b.Occupancy, tol) {
		return false
	}
	return xyzEq(a.Coord, b.Coord, tol)
}

func residueEq(a, b *Residue, tol float64) bool {
	if a.ID != b.ID || a.Name != b.Name || a.NAtoms() != b.NAtoms() {
		return false
	}
	ua, ub := a.Unpacked(), b.Unpacked()
	if len(ua) != len(ub) {
		return false
	}
	for i := range ua {
		if !atomEq(ua[i], ub[i], tol) {
			return false
		}
	}
	return true
}

// AllEqual says if two structures hold the same tree, comparing
// coordinates and the other floats within tol. Children are compared in
// order, so two structures built from the same records always match.
func AllEqual(s1, s2 *Structure, tol float64) bool {
	if s1.NModels() != s2.NModels() {
		return false
	}
	for i, m1 := range s1.Models() {
		m2 := s2.Models()[i]
		if m1.NChains() != m2.NChains() {
			return false
		}
		for j, c1 := range m1.Chains() {
			c2 := m2.Chains()[j]
			if c1.ID != c2.ID {
				return false
			}
			r1, r2 := c1.Unpacked(), c2.Unpacked()
			if len(r1) != len(r2) {
				return false
			}
			for k := range r1 {
				if !residueEq(r1[k], r2[k], tol) {
					return false
				}
			}
		}
	}
	return true
}
