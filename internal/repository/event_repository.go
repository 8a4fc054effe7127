package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/database"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/models"
)

// EventRepository is the append-only store for pipeline audit events.
// Events are never updated or deleted.
type EventRepository interface {
	// Append writes one pipeline event.
	Append(ctx context.Context, event *models.PipelineEvent) error
}

type eventRepository struct {
	db *database.Database
}

// NewEventRepository creates an EventRepository over the database.
func NewEventRepository(db *database.Database) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Append(ctx context.Context, event *models.PipelineEvent) error {
	snapshot, err := json.Marshal(event.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode event snapshot: %w", err)
	}

	query := `
		INSERT INTO pipeline_events (id, valuation_id, event_type, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		event.ID,
		event.ValuationID,
		event.EventType,
		snapshot,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append pipeline event %s: %w", event.ID, err)
	}
	return nil
}
