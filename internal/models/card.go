package models

import "time"

// Card is one entry in the static collectible catalog.
type Card struct {
	ID           int64
	Name         string
	Rarity       string
	Description  string
	ImageURL     string
	ThumbnailURL string
}

// OwnedCard joins a player to a card they have drawn. Append-only; a player
// owns at most one row per card.
type OwnedCard struct {
	ID        int64
	PlayerID  string
	CardID    int64
	CreatedAt time.Time
}

// AlbumEntry is a catalog card annotated with ownership for the album view.
type AlbumEntry struct {
	Card  Card
	Owned bool
}
