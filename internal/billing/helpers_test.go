package billing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestState(t *testing.T, rate float64) *State {
	t.Helper()
	return NewState(rate).WithIDGenerator(sequentialIDs("id"))
}

func mustAddRoom(t *testing.T, s *State, number, owner string) string {
	t.Helper()
	room, err := s.AddRoom(number, owner)
	require.NoError(t, err)
	return room.ID
}
