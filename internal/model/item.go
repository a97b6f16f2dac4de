package model

import "time"

// Item is a named resource owned by exactly one user.
type Item struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// CreateItemRequest represents an item creation request.
type CreateItemRequest struct {
	Name string `json:"name"`
}

// ItemResponse is the public view of an item; the owner is implied by the caller.
type ItemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeleteResponse is returned by item deletion regardless of whether anything matched.
type DeleteResponse struct {
	OK bool `json:"ok"`
}
