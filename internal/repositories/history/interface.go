package history

import (
	"context"
	"errors"

	"github.com/synthscan/synthscan/internal/models"
)

var (
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("record not found")

	// ErrStorageFull signals that persisting a record would exceed the
	// configured storage budget. The service layer reacts by degrading the
	// record, never by failing the analysis.
	ErrStorageFull = errors.New("history storage full")
)

// Repository describes persistence operations for analysis records.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Insert stores a record along with its accounted size in bytes.
	Insert(ctx context.Context, rec *models.Record, sizeBytes int64) error

	// List returns all readable records, newest first. Rows whose verdict can
	// no longer be decoded are treated as absent rather than failing the load.
	List(ctx context.Context) ([]models.Record, error)

	// GetByID returns a single record, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Record, error)

	// DeleteByID removes a record. Deleting an id that is not present is not
	// an error.
	DeleteByID(ctx context.Context, id string) error

	// StoredBytes returns the summed accounted size of all records.
	StoredBytes(ctx context.Context) (int64, error)
}
