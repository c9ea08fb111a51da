// Package services contains the application services of the synthscan
// client. This file defines the history service: the in-memory list of
// archived analyses backed by SQLite, with storage budgeting and graceful
// degradation when the budget is exhausted.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/synthscan/synthscan/internal/dbx"
	"github.com/synthscan/synthscan/internal/logging"
	"github.com/synthscan/synthscan/internal/models"
	"github.com/synthscan/synthscan/internal/repositories/history"
)

// HistoryService manages archived analysis records.
//
// Contract:
//   - Load: read the persisted history once, at startup. Unreadable
//     persistence yields an empty history, never a failure.
//   - Append: add a completed analysis. The in-memory list always keeps the
//     full record; the persisted copy degrades (preview elided, then dropped)
//     when the storage budget does not fit it.
//   - Remove: delete by id, idempotently, persisting immediately.
//   - List/Get: read-only snapshots, newest first, safe to retain.
type HistoryService interface {
	Load(ctx context.Context) error
	Append(ctx context.Context, rec models.Record) error
	Remove(ctx context.Context, id string) error
	List() []models.Record
	Get(id string) (*models.Record, bool)
}

// historyService is the concrete HistoryService backed by a local SQL
// database. The in-memory slice is the read surface; the database is the
// durable copy.
type historyService struct {
	db     *sql.DB
	budget int64
	log    logging.Logger

	newRepo func(db dbx.DBTX) history.Repository

	mu      sync.RWMutex
	records []models.Record
	loaded  bool
}

// NewHistoryService constructs a HistoryService over db with the given
// storage budget in bytes. A budget of 0 disables the cap.
func NewHistoryService(db *sql.DB, budget int64, log logging.Logger) HistoryService {
	return &historyService{
		db:     db,
		budget: budget,
		log:    log,
		newRepo: func(d dbx.DBTX) history.Repository {
			return history.NewSQLiteRepository(d)
		},
	}
}

// Load reads the persisted records into memory. It runs at most once; later
// calls are no-ops. Any read failure is logged and leaves the history empty,
// because a client that cannot show old analyses must still analyze new ones.
func (s *historyService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	s.loaded = true

	recs, err := s.newRepo(s.db).List(ctx)
	if err != nil {
		s.log.Warn(ctx, "history could not be read, starting empty", "error", err)
		s.records = nil
		return nil
	}
	s.records = recs
	s.log.Info(ctx, "history loaded", "records", len(recs))
	return nil
}

// Append archives a completed analysis. The record lands in memory
// unconditionally and newest first. Persistence then runs in up to two
// attempts: the full record, and on budget exhaustion the record with its
// preview elided. When both fail the record exists in memory only and an
// error is returned for the caller to log.
func (s *historyService) Append(ctx context.Context, rec models.Record) error {
	s.mu.Lock()
	s.records = append([]models.Record{rec.Clone()}, s.records...)
	s.mu.Unlock()

	err := s.persist(ctx, &rec)
	if err == nil {
		return nil
	}
	if !isStorageFull(err) {
		return fmt.Errorf("failed to persist record: %w", err)
	}

	elided := rec.Clone()
	elided.Preview = ""
	if err2 := s.persist(ctx, &elided); err2 != nil {
		return fmt.Errorf("record not persisted, kept in memory only: %w", err2)
	}
	s.log.Info(ctx, "preview elided to fit storage budget", "id", rec.Id)
	return nil
}

// persist writes one record inside a transaction, checking the budget
// against current usage first so the check and the insert see the same
// state.
func (s *historyService) persist(ctx context.Context, rec *models.Record) error {
	size, err := history.RecordSize(rec)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if s.budget > 0 {
			used, err := repo.StoredBytes(ctx)
			if err != nil {
				return err
			}
			if used+size > s.budget {
				return fmt.Errorf("%w: %d bytes used, %d wanted, budget %d",
					history.ErrStorageFull, used, size, s.budget)
			}
		}
		return repo.Insert(ctx, rec, size)
	})
}

// isStorageFull recognizes both our own budget rejection and the driver's
// out-of-space failure.
func isStorageFull(err error) bool {
	if errors.Is(err, history.ErrStorageFull) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "database or disk is full")
}

// Remove deletes a record by id from memory and from the database. Removing
// an id that is not present is not an error.
func (s *historyService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	kept := s.records[:0:0]
	for i := range s.records {
		if s.records[i].Id != id {
			kept = append(kept, s.records[i])
		}
	}
	s.records = kept
	s.mu.Unlock()

	if err := s.newRepo(s.db).DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// List returns a copy of the records, newest first.
func (s *historyService) List() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0, len(s.records))
	for i := range s.records {
		out = append(out, s.records[i].Clone())
	}
	return out
}

// Get returns a copy of one record by id.
func (s *historyService) Get(id string) (*models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].Id == id {
			c := s.records[i].Clone()
			return &c, true
		}
	}
	return nil, false
}
