package menu

import "time"

// Item is a menu entry. Orders snapshot the name and prices at creation, so
// edits here never rewrite past orders.
type Item struct {
	ID          int       `json:"id"`
	CategoryID  *int      `json:"categoryId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceINR    float64   `json:"priceInr"`
	PriceUSD    float64   `json:"priceUsd"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateItemInput struct {
	CategoryID  *int    `json:"categoryId,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	PriceINR    float64 `json:"priceInr"`
	PriceUSD    float64 `json:"priceUsd"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type UpdateItemInput struct {
	CategoryID  *int     `json:"categoryId,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	PriceINR    *float64 `json:"priceInr,omitempty"`
	PriceUSD    *float64 `json:"priceUsd,omitempty"`
	Available   *bool    `json:"available,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

type ItemFilterInput struct {
	CategoryID *int
	Available  *bool
	Search     *string
}
