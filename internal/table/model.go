package table

import "time"

// Table is a physical table carrying a QR code. Orders reference tables by
// their public number; the slug is what the QR code encodes.
type Table struct {
	ID        int       `json:"id"`
	Number    int       `json:"number"`
	Name      string    `json:"name"`
	GroupID   *int      `json:"groupId,omitempty"`
	QRSlug    string    `json:"qrSlug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableGroup is a seating area (hall, terrace, rooftop).
type TableGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CreateTableInput struct {
	Number  int    `json:"number"`
	Name    string `json:"name"`
	GroupID *int   `json:"groupId,omitempty"`
}

type UpdateTableInput struct {
	Name    *string `json:"name,omitempty"`
	GroupID *int    `json:"groupId,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}
