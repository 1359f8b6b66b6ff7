package models

import "strings"

// Room is a rentable kost room with its own electricity meter
type Room struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Owner  string `json:"owner"`
}

// Normalize trims the operator-entered fields
func (r *Room) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	r.Owner = strings.TrimSpace(r.Owner)
}

// RoomResponse is the JSON response format for a room with its billing state
type RoomResponse struct {
	ID            string   `json:"id"`
	Number        string   `json:"number"`
	Owner         string   `json:"owner"`
	Credit        float64  `json:"credit"`
	HasUnpaidBill bool     `json:"hasUnpaidBill"`
	LatestReading *Reading `json:"latestReading,omitempty"`
	LatestPayment *Payment `json:"latestPayment,omitempty"`
}
