// Package structure holds the four level tree we build from coordinate
// records: Structure -> Model -> Chain -> Residue -> Atom. Children are
// kept in the order they were added, but can also be found by key.
// Positions where a file gave us more than one version of a residue or
// atom are wrapped in a disordered type holding the variants.
package structure

// Xyz is one set of coordinates. Float32 gives us more precision than
// the three decimal places in a coordinate file.
type Xyz struct{ X, Y, Z float32 }

// Structure is the top of the tree. The Header map is filled by whoever
// read the file and is carried around untouched.
type Structure struct {
	ID     string
	Header map[string]any
	models []*Model
	ndx    map[int]int
}

// NewStructure gives us an empty structure with the given id.
func NewStructure(id string) *Structure {
	return &Structure{ID: id, ndx: make(map[int]int)}
}

// Add puts a model at the end of the structure. If the id was already
// there, the old model stays in the list, but lookups find the new one.
func (s *Structure) Add(m *Model) {
	s.ndx[m.ID] = len(s.models)
	s.models = append(s.models, m)
}

// Has says if we have a model with this id.
func (s *Structure) Has(id int) bool { _, ok := s.ndx[id]; return ok }

// Model returns the model with the given id or nil.
func (s *Structure) Model(id int) *Model {
	if i, ok := s.ndx[id]; ok {
		return s.models[i]
	}
	return nil
}

// Models returns the models in the order they were added.
func (s *Structure) Models() []*Model { return s.models }

// NModels says how many models we have.
func (s *Structure) NModels() int { return len(s.models) }

// Model is one model from the file. NMR structures have many, X-ray
// structures usually one. Serial is the number from the MODEL record,
// which does not have to match our own id.
type Model struct {
	ID     int
	Serial int
	chains []*Chain
	ndx    map[string]int
}

// NewModel gives us an empty model.
func NewModel(id, serial int) *Model {
	return &Model{ID: id, Serial: serial, ndx: make(map[string]int)}
}

// Add puts a chain at the end of the model.
func (m *Model) Add(c *Chain) {
	m.ndx[c.ID] = len(m.chains)
	m.chains = append(m.chains, c)
}

// Has says if the model has a chain with this id.
func (m *Model) Has(id string) bool { _, ok := m.ndx[id]; return ok }

// Chain returns the chain with the given id or nil.
func (m *Model) Chain(id string) *Chain {
	if i, ok := m.ndx[id]; ok {
		return m.chains[i]
	}
	return nil
}

// Chains returns the chains in the order they were added.
func (m *Model) Chains() []*Chain { return m.chains }

// NChains says how many chains the model has.
func (m *Model) NChains() int { return len(m.chains) }
