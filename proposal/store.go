package proposal

import (
	"time"
)

// Store holds all proposals with monotonically assigned IDs.
// Proposals are retained forever as an audit trail.
type Store struct {
	proposals map[uint64]*Proposal
	order     []uint64
	nextID    uint64
}

// NewStore creates an empty proposal store. IDs start at 1.
func NewStore() *Store {
	return &Store{
		proposals: make(map[uint64]*Proposal),
		nextID:    1,
	}
}

// NextID returns the ID the next proposal will receive.
func (s *Store) NextID() uint64 {
	return s.nextID
}

// Put records a proposal. A proposal with the next expected ID advances
// the counter; replayed proposals keep their original IDs.
func (s *Store) Put(p *Proposal) {
	if _, exists := s.proposals[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.proposals[p.ID] = p
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
}

// Get returns a proposal by ID.
func (s *Store) Get(id uint64) (*Proposal, error) {
	p, ok := s.proposals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns all proposals in creation order.
func (s *Store) List() []*Proposal {
	result := make([]*Proposal, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.proposals[id])
	}
	return result
}

// Active returns the IDs of proposals still open for voting at the
// given time, in creation order.
func (s *Store) Active(now time.Time) []uint64 {
	var result []uint64
	for _, id := range s.order {
		p := s.proposals[id]
		if p.Status == StatusOpen && !p.Expired(now) {
			result = append(result, id)
		}
	}
	return result
}
