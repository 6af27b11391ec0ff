package store

import "time"

// Place is a persistent gazetteer catalog row; rows are loaded into the
// in-memory gazetteer at server start.
type Place struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lng       float64   `json:"lng"`
	Lat       float64   `json:"lat"`
	CreatedAt time.Time `json:"created_at"`
}
