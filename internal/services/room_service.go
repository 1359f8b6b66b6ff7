package services

import (
	"context"

	"github.com/sjperalta/kost-listrik-api/internal/billing"
	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/sjperalta/kost-listrik-api/pkg/logger"
)

// RoomService handles the room registry and per-room views
type RoomService struct {
	ledger *LedgerService
	backup *BackupService
}

// NewRoomService creates a new room service. backup may be nil.
func NewRoomService(ledger *LedgerService, backup *BackupService) *RoomService {
	return &RoomService{ledger: ledger, backup: backup}
}

// List returns every room with its latest bill and credit
func (s *RoomService) List(ctx context.Context) []models.RoomResponse {
	var rooms []models.RoomResponse
	s.ledger.view(func(st *billing.State) { rooms = st.RoomSummaries() })
	return rooms
}

// Get returns a room with its full billing history
func (s *RoomService) Get(ctx context.Context, roomID string) (*models.RoomDetail, error) {
	var (
		detail *models.RoomDetail
		err    error
	)
	s.ledger.view(func(st *billing.State) { detail, err = st.RoomDetail(roomID) })
	return detail, err
}

// History returns the room's readings, newest first, with payment status
func (s *RoomService) History(ctx context.Context, roomID string) ([]models.HistoryEntry, error) {
	var (
		history []models.HistoryEntry
		err     error
	)
	s.ledger.view(func(st *billing.State) {
		if _, err = st.FindRoom(roomID); err != nil {
			return
		}
		history = st.RoomHistory(roomID)
	})
	return history, err
}

// Unpaid returns the room's unpaid readings, newest first
func (s *RoomService) Unpaid(ctx context.Context, roomID string) ([]models.Reading, error) {
	var (
		unpaid []models.Reading
		err    error
	)
	s.ledger.view(func(st *billing.State) {
		if _, err = st.FindRoom(roomID); err != nil {
			return
		}
		unpaid = st.UnpaidReadingsSortedDesc(roomID)
	})
	return unpaid, err
}

// NextStartReading returns the meter value the next reading should start from
func (s *RoomService) NextStartReading(ctx context.Context, roomID string) (float64, error) {
	var (
		next float64
		err  error
	)
	s.ledger.view(func(st *billing.State) {
		if _, err = st.FindRoom(roomID); err != nil {
			return
		}
		next = st.NextStartReading(roomID)
	})
	return next, err
}

// Create registers a new room
func (s *RoomService) Create(ctx context.Context, number, owner string) (*models.Room, error) {
	var room *models.Room
	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		var err error
		room, err = st.AddRoom(number, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Room created", "room_id", room.ID, "number", room.Number)
	return room, nil
}

// Update changes a room's number and owner
func (s *RoomService) Update(ctx context.Context, roomID, number, owner string) (*models.Room, error) {
	var room *models.Room
	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		var err error
		room, err = st.EditRoom(roomID, number, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Room updated", "room_id", room.ID)
	return room, nil
}

// Delete removes a room and everything billed to it. The state before the
// delete is backed up in the background.
func (s *RoomService) Delete(ctx context.Context, roomID string) (*billing.DeleteResult, error) {
	var result *billing.DeleteResult
	var before models.Snapshot

	err := s.ledger.mutate(ctx, func(st *billing.State) error {
		before = st.Snapshot()
		var err error
		result, err = st.DeleteRoom(roomID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.backup != nil {
		s.backup.WriteAsync(before, "before-delete-room")
	}
	logger.Info("Room deleted",
		"room_id", roomID,
		"readings", result.Readings,
		"payments", result.Payments,
		"credit", result.Credit,
	)
	return result, nil
}
