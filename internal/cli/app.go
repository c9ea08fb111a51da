package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/synthscan/synthscan/internal/config"
	"github.com/synthscan/synthscan/internal/cryptox"
	"github.com/synthscan/synthscan/internal/detector"
	"github.com/synthscan/synthscan/internal/keyring"
	"github.com/synthscan/synthscan/internal/logging"
	"github.com/synthscan/synthscan/internal/media"
	"github.com/synthscan/synthscan/internal/services"
	"github.com/synthscan/synthscan/internal/session"

	_ "modernc.org/sqlite"
)

// Mode reflects detector reachability as seen by the background watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// pingTimeout bounds one reachability probe.
const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	session  session.Controller
	history  services.HistoryService
	detector detector.Client
	keys     *keyring.Keyring
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB

	// setAPIKey updates the live detector client when the user stores a new
	// key. Tests replace it.
	setAPIKey func(key string)

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp wires the application: it opens and migrates the history database,
// unlocks the stored API key when one exists and none was configured, and
// connects the session controller to the detector client and the history
// archive.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	keys := keyring.New(c.KeyringPath)

	apiKey := c.APIKey
	if apiKey == "" && keys.Exists() {
		apiKey = unlockStoredKey(ctx, keys, log)
	}
	if apiKey == "" {
		fmt.Println("No API key configured. Use the 'key' command to store one.")
	}

	apiClient := detector.NewHTTPClient(c.DetectorBaseURL, apiKey, c.RequestTimeout)
	hist := services.NewHistoryService(db, c.MaxStorageBytes, log)
	sess := session.NewController(media.NewEncoder(media.MaxUploadBytes), apiClient, hist, log)

	return &App{
		config:    c,
		session:   sess,
		history:   hist,
		detector:  apiClient,
		keys:      keys,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		db:        db,
		setAPIKey: apiClient.SetAPIKey,
	}, nil
}

// unlockStoredKey prompts for the keyring passphrase and decrypts the stored
// API key. Failures leave the client keyless rather than blocking startup.
func unlockStoredKey(ctx context.Context, keys *keyring.Keyring, log logging.Logger) string {
	pass, err := GetSecret(os.Stdout, "Enter keyring passphrase: ")
	if err != nil {
		log.Warn(ctx, "could not read passphrase", "error", err)
		return ""
	}
	defer cryptox.Wipe(pass)
	apiKey, err := keys.Load(string(pass))
	if err != nil {
		log.Warn(ctx, "stored api key not unlocked", "error", err)
		fmt.Println("Could not unlock the stored API key, continuing without it.")
		return ""
	}
	return apiKey
}

// Run loads the history, starts the connectivity watcher, and blocks in the
// REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	_ = a.history.Load(ctx)

	a.checkDetector(ctx)
	go a.StartDetectorWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Println("SynthScan CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the detector client and the database.
func (a *App) Close() {
	if a.detector != nil {
		_ = a.detector.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "detector connectivity changed", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

// getStatus renders the prompt annotation, e.g. "(online idle)".
func (a *App) getStatus() string {
	s := string(a.currentMode())
	if state := a.session.Snapshot().State; state != "" {
		if s != "" {
			s += " "
		}
		s += string(state)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// checkDetector probes the detector once and updates the mode.
func (a *App) checkDetector(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.detector.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

// StartDetectorWatcher probes detector reachability every interval until ctx
// is cancelled. It only flips the mode, analyses are still attempted while
// offline and fail with a classified error.
func (a *App) StartDetectorWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkDetector(ctx)
		case <-ctx.Done():
			return
		}
	}
}
