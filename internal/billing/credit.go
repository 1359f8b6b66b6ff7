package billing

import (
	"fmt"

	"github.com/sjperalta/kost-listrik-api/internal/models"
)

// Credit returns the rollover balance of a room, 0 when it has none
func (s *State) Credit(roomID string) float64 {
	if i := s.creditIndex(roomID); i >= 0 {
		return s.Credits[i].Amount
	}
	return 0
}

// ApplyCredit adds delta to a room's balance. A balance reaching exactly zero
// removes the record; a negative result is rejected and nothing changes.
func (s *State) ApplyCredit(roomID string, delta float64) error {
	i := s.creditIndex(roomID)

	current := 0.0
	if i >= 0 {
		current = s.Credits[i].Amount
	}

	next := current + delta
	if !isFinite(next) {
		return invalid("credit", "saldo kredit melebihi batas")
	}
	if next < 0 {
		return fmt.Errorf("%w: kamar %s saldo %.2f perubahan %.2f", ErrNegativeCredit, roomID, current, delta)
	}

	switch {
	case next == 0:
		if i >= 0 {
			s.Credits = append(s.Credits[:i:i], s.Credits[i+1:]...)
		}
	case i >= 0:
		s.Credits[i].Amount = next
	default:
		s.Credits = append(s.Credits, models.Credit{RoomID: roomID, Amount: next})
	}
	return nil
}

func (s *State) creditIndex(roomID string) int {
	for i := range s.Credits {
		if s.Credits[i].RoomID == roomID {
			return i
		}
	}
	return -1
}
