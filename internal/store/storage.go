package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Interactions interface {
		EnsureSchema(ctx context.Context) error
		InsertInteraction(ctx context.Context, interaction *Interaction) error
		GetLatest(ctx context.Context, limit int) ([]Interaction, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Interactions: &InteractionStore{db: db},
	}
}
