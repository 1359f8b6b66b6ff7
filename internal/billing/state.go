// Package billing is the kost electricity ledger: meter readings, rollover
// credit, payments and the projections derived from them.
//
// State is a plain aggregate owned by the caller. Every mutation either
// applies completely or returns an error with the state untouched; callers
// that persist state are expected to mutate a Clone and swap it in once the
// snapshot is saved.
package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sjperalta/kost-listrik-api/internal/models"
)

// State holds the four billing collections and the current tariff
type State struct {
	Rooms      []models.Room
	Readings   []models.Reading
	Payments   []models.Payment
	Credits    []models.Credit
	RatePerKwh float64

	newID func() string
}

// NewState creates an empty ledger with the given tariff
func NewState(ratePerKwh float64) *State {
	return &State{RatePerKwh: ratePerKwh, newID: uuid.NewString}
}

// FromSnapshot rebuilds a state from persisted collections, rejecting
// snapshots that break the ledger invariants
func FromSnapshot(snap models.Snapshot) (*State, error) {
	if snap.RatePerKwh <= 0 {
		return nil, invalid("ratePerKwh", "tarif harus lebih besar dari 0")
	}

	seen := make(map[string]bool, len(snap.Credits))
	for _, c := range snap.Credits {
		if c.Amount <= 0 {
			return nil, invalid("credits", fmt.Sprintf("kredit kamar %s harus lebih besar dari 0", c.RoomID))
		}
		if seen[c.RoomID] {
			return nil, invalid("credits", fmt.Sprintf("kamar %s memiliki lebih dari satu kredit", c.RoomID))
		}
		seen[c.RoomID] = true
	}

	for _, r := range snap.Readings {
		if r.CreditApplied < 0 || r.CreditApplied > r.Cost || r.FinalCost != r.Cost-r.CreditApplied {
			return nil, invalid("readings", fmt.Sprintf("rincian biaya pembacaan %s tidak konsisten", r.ID))
		}
	}

	s := NewState(snap.RatePerKwh)
	s.Rooms = append([]models.Room(nil), snap.Rooms...)
	s.Readings = append([]models.Reading(nil), snap.Readings...)
	s.Payments = append([]models.Payment(nil), snap.Payments...)
	s.Credits = append([]models.Credit(nil), snap.Credits...)
	return s, nil
}

// WithIDGenerator replaces the identifier source, mainly for tests
func (s *State) WithIDGenerator(fn func() string) *State {
	s.newID = fn
	return s
}

// IDGenerator returns the identifier source
func (s *State) IDGenerator() func() string {
	if s.newID == nil {
		return uuid.NewString
	}
	return s.newID
}

// Clone returns a deep copy sharing nothing with s
func (s *State) Clone() *State {
	return &State{
		Rooms:      append([]models.Room(nil), s.Rooms...),
		Readings:   append([]models.Reading(nil), s.Readings...),
		Payments:   append([]models.Payment(nil), s.Payments...),
		Credits:    append([]models.Credit(nil), s.Credits...),
		RatePerKwh: s.RatePerKwh,
		newID:      s.newID,
	}
}

// Snapshot copies the state into its persisted form. Collections are never nil.
func (s *State) Snapshot() models.Snapshot {
	return models.Snapshot{
		Rooms:      append([]models.Room{}, s.Rooms...),
		Readings:   append([]models.Reading{}, s.Readings...),
		Payments:   append([]models.Payment{}, s.Payments...),
		Credits:    append([]models.Credit{}, s.Credits...),
		RatePerKwh: s.RatePerKwh,
	}
}

func (s *State) nextID() string {
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s.newID()
}

// FindRoom returns the room with the given id
func (s *State) FindRoom(id string) (*models.Room, error) {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			room := s.Rooms[i]
			return &room, nil
		}
	}
	return nil, notFound("kamar", id)
}

// FindReading returns the reading with the given id
func (s *State) FindReading(id string) (*models.Reading, error) {
	for i := range s.Readings {
		if s.Readings[i].ID == id {
			reading := s.Readings[i]
			return &reading, nil
		}
	}
	return nil, notFound("pembacaan meteran", id)
}

// SetTariff changes the rate used by readings recorded from now on
func (s *State) SetTariff(ratePerKwh float64) error {
	if ratePerKwh <= 0 {
		return invalid("ratePerKwh", "tarif harus lebih besar dari 0")
	}
	s.RatePerKwh = ratePerKwh
	return nil
}
