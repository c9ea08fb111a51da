// Package session implements the lifecycle of a single analysis: encode the
// file, submit it to the detector, and settle into a completed or failed
// state that the UI renders. A generation counter guards against results of
// superseded submissions leaking into the current state.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/synthscan/synthscan/internal/detector"
	"github.com/synthscan/synthscan/internal/faults"
	"github.com/synthscan/synthscan/internal/logging"
	"github.com/synthscan/synthscan/internal/models"
)

// State names the phase the session is in.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

var (
	// ErrBusy is returned by Submit while another submission is running.
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrNoFailedAnalysis is returned by Retry when the session is not in
	// the failed state.
	ErrNoFailedAnalysis = errors.New("there is no failed analysis to retry")

	// ErrNotRetryable is returned by Retry when the recorded failure cannot
	// be fixed by trying again, such as an oversized file.
	ErrNotRetryable = errors.New("the last failure cannot be fixed by retrying")
)

// Failure describes why an analysis failed: the classified category, the
// fixed user-facing message for that category, and the underlying error.
type Failure struct {
	Category faults.Category
	Message  string
	Err      error
}

// Snapshot is a point-in-time copy of the session, safe to retain and render
// while the session moves on.
type Snapshot struct {
	State       State
	Path        string
	Media       *models.UploadedMedia
	Verdict     *models.Verdict
	Failure     *Failure
	FromHistory bool
	RecordID    string
}

// Encoder prepares a file on disk for submission.
type Encoder interface {
	Encode(ctx context.Context, path string) (*models.UploadedMedia, error)
}

// Archiver stores a completed analysis.
type Archiver interface {
	Append(ctx context.Context, rec models.Record) error
}

// Controller drives the analysis session.
type Controller interface {
	// Submit encodes the file at path and sends it for analysis. It blocks
	// until the session settles. ErrBusy is returned while a previous
	// submission is still running; analysis failures are not returned but
	// recorded in the session state.
	Submit(ctx context.Context, path string) error

	// Retry re-submits the failed analysis. When the media was encoded
	// before the failure it is reused as-is, so the file may have changed
	// or disappeared on disk in the meantime.
	Retry(ctx context.Context) error

	// Reset discards the session state and returns to idle. An in-flight
	// submission keeps running but its result is dropped on arrival.
	Reset()

	// LoadRecord replaces the session with a completed analysis restored
	// from history.
	LoadRecord(rec models.Record)

	// Snapshot returns a copy of the current state.
	Snapshot() Snapshot
}

type controller struct {
	encoder Encoder
	client  detector.Client
	archive Archiver
	log     logging.Logger

	nowFn func() time.Time
	newID func() string

	mu          sync.Mutex
	gen         uint64
	state       State
	path        string
	media       *models.UploadedMedia
	verdict     *models.Verdict
	failure     *Failure
	fromHistory bool
	recordID    string
}

// NewController constructs an idle session controller. The archiver may be
// nil, in which case completed analyses are not persisted.
func NewController(encoder Encoder, client detector.Client, archive Archiver, log logging.Logger) Controller {
	return &controller{
		encoder: encoder,
		client:  client,
		archive: archive,
		log:     log,
		nowFn:   time.Now,
		newID:   uuid.NewString,
		state:   StateIdle,
	}
}

func (c *controller) Submit(ctx context.Context, path string) error {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	gen := c.beginLocked(path)
	c.mu.Unlock()

	c.run(ctx, gen, path, nil)
	return nil
}

func (c *controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateFailed {
		c.mu.Unlock()
		return ErrNoFailedAnalysis
	}
	if c.failure != nil && !c.failure.Category.Retryable() {
		c.mu.Unlock()
		return ErrNotRetryable
	}
	path := c.path
	captured := c.media
	gen := c.beginLocked(path)
	c.mu.Unlock()

	// A nil captured media means the failure happened during encoding, so
	// the retry starts over from the file.
	c.run(ctx, gen, path, captured)
	return nil
}

func (c *controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state = StateIdle
	c.path = ""
	c.media = nil
	c.verdict = nil
	c.failure = nil
	c.fromHistory = false
	c.recordID = ""
}

func (c *controller) LoadRecord(rec models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.state = StateCompleted
	c.path = ""
	c.media = &models.UploadedMedia{
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		Preview:     rec.Preview,
	}
	c.verdict = rec.Verdict.Clone()
	c.failure = nil
	c.fromHistory = true
	c.recordID = rec.Id
}

func (c *controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:       c.state,
		Path:        c.path,
		FromHistory: c.fromHistory,
		RecordID:    c.recordID,
	}
	if c.media != nil {
		m := *c.media
		s.Media = &m
	}
	s.Verdict = c.verdict.Clone()
	if c.failure != nil {
		f := *c.failure
		s.Failure = &f
	}
	return s
}

// beginLocked starts a new submission generation. The caller holds the lock.
func (c *controller) beginLocked(path string) uint64 {
	c.gen++
	c.state = StateSubmitting
	c.path = path
	c.media = nil
	c.verdict = nil
	c.failure = nil
	c.fromHistory = false
	c.recordID = ""
	return c.gen
}

// run performs one submission attempt for the given generation. When m is
// nil the file is encoded first; otherwise the already-captured media is
// reused.
func (c *controller) run(ctx context.Context, gen uint64, path string, m *models.UploadedMedia) {
	if m == nil {
		encoded, err := c.encoder.Encode(ctx, path)
		if err != nil {
			c.fail(ctx, gen, nil, err)
			return
		}
		m = encoded
	}

	if !c.attach(gen, m) {
		return
	}

	verdict, err := c.client.Analyze(ctx, m.Payload, m.ContentType)
	if err != nil {
		c.fail(ctx, gen, m, err)
		return
	}
	c.complete(ctx, gen, m, verdict)
}

// attach publishes the encoded media, unless the generation was superseded
// in the meantime. A false return tells run to stop before spending network
// time on a result nobody wants.
func (c *controller) attach(gen uint64, m *models.UploadedMedia) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}
	c.media = m
	return true
}

func (c *controller) fail(ctx context.Context, gen uint64, m *models.UploadedMedia, err error) {
	category := faults.Classify(err)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.log.Info(ctx, "discarding failure of a superseded submission", "error", err)
		return
	}
	if m != nil {
		c.media = m
	}
	c.state = StateFailed
	c.failure = &Failure{
		Category: category,
		Message:  category.Message(),
		Err:      err,
	}
	c.mu.Unlock()

	c.log.Warn(ctx, "analysis failed", "category", string(category), "error", err)
}

func (c *controller) complete(ctx context.Context, gen uint64, m *models.UploadedMedia, v *models.Verdict) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		c.log.Info(ctx, "discarding verdict of a superseded submission")
		return
	}
	c.media = m
	c.verdict = v
	c.failure = nil
	c.state = StateCompleted

	rec := models.Record{
		Id:          c.newID(),
		CreatedAt:   c.nowFn().UTC(),
		FileName:    m.FileName,
		ContentType: m.ContentType,
		Preview:     m.Preview,
		Verdict:     *v.Clone(),
	}
	c.recordID = rec.Id
	c.mu.Unlock()

	if c.archive == nil {
		return
	}
	// Archival failures never undo a completed analysis.
	if err := c.archive.Append(ctx, rec); err != nil {
		c.log.Error(ctx, "failed to archive analysis", "id", rec.Id, "error", err)
	}
}
