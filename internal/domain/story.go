package domain

import "time"

// ShortDescriptionMaxLen limita la descripcion corta (en runas).
const ShortDescriptionMaxLen = 200

type Story struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ShortDescription string    `json:"shortDescription"`
	Content          string    `json:"content"`
	Published        bool      `json:"published"`
	AuthorID         string    `json:"authorId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
