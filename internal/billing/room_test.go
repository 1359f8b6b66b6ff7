package billing

import (
	"testing"

	"github.com/sjperalta/kost-listrik-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRoom(t *testing.T) {
	s := newTestState(t, 1500)

	room, err := s.AddRoom("  101 ", " Budi ")
	require.NoError(t, err)
	assert.Equal(t, "101", room.Number)
	assert.Equal(t, "Budi", room.Owner)
	assert.Equal(t, "id-1", room.ID)

	_, err = s.AddRoom("", "Budi")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddRoom("102", "   ")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Len(t, s.Rooms, 1)
}

func TestEditRoom(t *testing.T) {
	s := newTestState(t, 1500)
	roomID := mustAddRoom(t, s, "101", "Budi")

	room, err := s.EditRoom(roomID, "101A", "Budi Santoso")
	require.NoError(t, err)
	assert.Equal(t, models.Room{ID: roomID, Number: "101A", Owner: "Budi Santoso"}, *room)
	assert.Equal(t, *room, s.Rooms[0])

	_, err = s.EditRoom("missing", "1", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.EditRoom(roomID, "", "x")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "101A", s.Rooms[0].Number)
}

func TestDeleteRoom_Cascade(t *testing.T) {
	s := newTestState(t, 1000)
	keep := mustAddRoom(t, s, "301", "Keep")
	drop := mustAddRoom(t, s, "302", "Drop")

	keepJan := recordTestReading(t, s, keep, 1, 2024, 0, 10)
	dropJan := recordTestReading(t, s, drop, 1, 2024, 0, 10)
	recordTestReading(t, s, drop, 2, 2024, 10, 20)

	_, err := s.RecordPayment(PaymentInput{ReadingID: keepJan, PaymentDate: paidOn, AmountPaid: 15000})
	require.NoError(t, err)
	_, err = s.RecordPayment(PaymentInput{ReadingID: dropJan, PaymentDate: paidOn, AmountPaid: 12000})
	require.NoError(t, err)

	before := s.Clone()

	result, err := s.DeleteRoom(drop)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Readings)
	assert.Equal(t, 1, result.Payments)
	assert.Equal(t, 2000.0, result.Credit)

	// exactly the deleted room's data is gone
	assert.Equal(t, []models.Room{before.Rooms[0]}, s.Rooms)
	assert.Equal(t, []models.Reading{before.Readings[0]}, s.Readings)
	assert.Equal(t, []models.Payment{before.Payments[0]}, s.Payments)
	assert.Equal(t, []models.Credit{{RoomID: keep, Amount: 5000}}, s.Credits)

	_, err = s.DeleteRoom(drop)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetTariff(t *testing.T) {
	s := newTestState(t, 1500)
	require.NoError(t, s.SetTariff(1700))
	assert.Equal(t, 1700.0, s.RatePerKwh)

	assert.ErrorIs(t, s.SetTariff(0), ErrValidation)
	assert.ErrorIs(t, s.SetTariff(-10), ErrValidation)
	assert.Equal(t, 1700.0, s.RatePerKwh)
}
