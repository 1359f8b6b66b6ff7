package models

// Credit is the rollover balance of a room. A stored Credit always has Amount > 0.
type Credit struct {
	RoomID string  `json:"roomId"`
	Amount float64 `json:"amount"`
}
