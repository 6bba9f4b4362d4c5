package model

// ResultSet is the keyed collection accumulated across datasets. It keeps
// first-insertion order so output is deterministic; replacing a record keeps
// its original position.
type ResultSet struct {
	order []string
	byID  map[string]*FoodRecord
}

// NewResultSet returns an empty set.
func NewResultSet() *ResultSet {
	return &ResultSet{byID: map[string]*FoodRecord{}}
}

// Has reports whether id is taken.
func (s *ResultSet) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Get returns the record stored under id, or nil.
func (s *ResultSet) Get(id string) *FoodRecord {
	return s.byID[id]
}

// Put stores r under r.ID, replacing any record already there.
func (s *ResultSet) Put(r *FoodRecord) {
	if _, ok := s.byID[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.byID[r.ID] = r
}

// Len is the number of records held.
func (s *ResultSet) Len() int { return len(s.order) }

// Records returns the stored records in insertion order.
func (s *ResultSet) Records() []*FoodRecord {
	out := make([]*FoodRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Filter returns the records, in insertion order, for which keep is true.
func (s *ResultSet) Filter(keep func(*FoodRecord) bool) []*FoodRecord {
	var out []*FoodRecord
	for _, id := range s.order {
		if r := s.byID[id]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}
