package out

import (
	"context"

	"gocycling/internal/modules/history/domain"
)

// RideStore is the queryable index of completed rides.
type RideStore interface {
	// Insert stores ride and returns it with its insertion sequence. Inserting
	// an id that already exists returns the stored ride unchanged.
	Insert(ctx context.Context, ride domain.Ride) (domain.Ride, error)
	// List returns every ride in insertion order.
	List(ctx context.Context) ([]domain.Ride, error)
	FindByID(ctx context.Context, id string) (domain.Ride, error)
	// Delete reports whether a ride was removed.
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// RideJournal keeps one human-readable note per ride.
type RideJournal interface {
	Write(ctx context.Context, ride domain.Ride) (string, error)
	Remove(ctx context.Context, ride domain.Ride) error
	List(ctx context.Context) ([]domain.Ride, error)
	PathFor(ride domain.Ride) string
}
