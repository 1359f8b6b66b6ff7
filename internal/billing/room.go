package billing

import "github.com/sjperalta/kost-listrik-api/internal/models"

// DeleteResult counts what a room deletion removed
type DeleteResult struct {
	Room     models.Room `json:"room"`
	Readings int         `json:"readings"`
	Payments int         `json:"payments"`
	Credit   float64     `json:"credit"`
}

func validateRoom(room *models.Room) error {
	room.Normalize()
	if room.Number == "" {
		return invalid("number", "nomor kamar wajib diisi")
	}
	if room.Owner == "" {
		return invalid("owner", "nama penghuni wajib diisi")
	}
	return nil
}

// AddRoom registers a new room
func (s *State) AddRoom(number, owner string) (*models.Room, error) {
	room := models.Room{Number: number, Owner: owner}
	if err := validateRoom(&room); err != nil {
		return nil, err
	}
	room.ID = s.nextID()
	s.Rooms = append(s.Rooms, room)
	return &room, nil
}

// EditRoom updates a room's number and owner
func (s *State) EditRoom(id, number, owner string) (*models.Room, error) {
	updated := models.Room{ID: id, Number: number, Owner: owner}
	if err := validateRoom(&updated); err != nil {
		return nil, err
	}
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			s.Rooms[i] = updated
			return &updated, nil
		}
	}
	return nil, notFound("kamar", id)
}

// DeleteRoom removes a room together with its payments, readings and credit,
// in that order so no payment ever points at a missing reading
func (s *State) DeleteRoom(id string) (*DeleteResult, error) {
	room, err := s.FindRoom(id)
	if err != nil {
		return nil, err
	}
	result := &DeleteResult{Room: *room, Credit: s.Credit(id)}

	readingIDs := make(map[string]bool)
	for _, r := range s.Readings {
		if r.RoomID == id {
			readingIDs[r.ID] = true
		}
	}

	payments := make([]models.Payment, 0, len(s.Payments))
	for _, p := range s.Payments {
		if readingIDs[p.ReadingID] {
			result.Payments++
			continue
		}
		payments = append(payments, p)
	}
	s.Payments = payments

	readings := make([]models.Reading, 0, len(s.Readings))
	for _, r := range s.Readings {
		if r.RoomID == id {
			result.Readings++
			continue
		}
		readings = append(readings, r)
	}
	s.Readings = readings

	if i := s.creditIndex(id); i >= 0 {
		s.Credits = append(s.Credits[:i:i], s.Credits[i+1:]...)
	}

	rooms := make([]models.Room, 0, len(s.Rooms))
	for _, r := range s.Rooms {
		if r.ID != id {
			rooms = append(rooms, r)
		}
	}
	s.Rooms = rooms

	return result, nil
}
