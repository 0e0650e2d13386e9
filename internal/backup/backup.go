// Package backup writes and restores encrypted snapshots of the ledger.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"localtrack/internal/logger"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	formatVersion = 1
	filePrefix    = "backup-"
	fileSuffix    = ".bin"
)

// ErrInvalidName is returned for names that are not plain backup file names.
var ErrInvalidName = errors.New("invalid backup name")

// envelope is the plaintext written into every backup file.
type envelope struct {
	Version int       `json:"version"`
	Created time.Time `json:"created"`
	store.Snapshot
}

// Info describes one backup file on disk.
type Info struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Counts reports how many records a restore loaded.
type Counts struct {
	Expenses     int `json:"expenses"`
	FuelLogs     int `json:"fuelLogs"`
	Loans        int `json:"loans"`
	LoanPayments int `json:"loanPayments"`
	Deliveries   int `json:"deliveries"`
}

type Service struct {
	store      *store.Store
	dir        string
	passphrase string
	log        zerolog.Logger
	now        func() time.Time
}

func New(st *store.Store, dir, passphrase string) *Service {
	return &Service{
		store:      st,
		dir:        dir,
		passphrase: passphrase,
		log:        logger.WithComponent("backup"),
		now:        time.Now,
	}
}

// Store returns the ledger the service reads from and restores into.
func (s *Service) Store() *store.Store {
	return s.store
}

// Create snapshots every collection, encrypts it and writes
// backup-<yyyymmdd>-<uuid>.bin into the backup directory.
func (s *Service) Create(ctx context.Context) (*Info, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	created := s.now()
	raw, err := json.Marshal(&envelope{Version: formatVersion, Created: created, Snapshot: *snap})
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	enc, err := util.EncryptAES(s.passphrase, raw)
	if err != nil {
		return nil, fmt.Errorf("encrypt backup: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	name := fmt.Sprintf("%s%s-%s%s", filePrefix, created.Format("20060102"), uuid.New().String(), fileSuffix)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, enc, 0o600); err != nil {
		return nil, fmt.Errorf("write backup: %w", err)
	}

	s.log.Info().
		Str("file", name).
		Int("expenses", len(snap.Expenses)).
		Int("deliveries", len(snap.Deliveries)).
		Msg("backup created")
	return &Info{Name: name, Size: int64(len(enc)), ModTime: created}, nil
}

// List returns the backups in the directory, newest first. A missing
// directory means no backups yet.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isBackupName(e.Name()) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		out = append(out, Info{Name: e.Name(), Size: fi.Size(), ModTime: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].ModTime.After(out[j].ModTime)
		}
		return out[i].Name > out[j].Name
	})
	return out, nil
}

// Path resolves a backup name inside the backup directory.
func (s *Service) Path(name string) (string, error) {
	if !isBackupName(name) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// Restore decrypts the file at path and replaces the whole ledger with its
// contents. Nothing changes if the file cannot be read, decrypted or loaded.
func (s *Service) Restore(ctx context.Context, path string) (*Counts, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	raw, err := util.DecryptAES(s.passphrase, enc)
	if err != nil {
		return nil, fmt.Errorf("decrypt backup: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if env.Version != formatVersion {
		return nil, fmt.Errorf("unsupported backup version %d", env.Version)
	}

	if err := s.store.ReplaceAll(ctx, &env.Snapshot); err != nil {
		return nil, err
	}

	counts := &Counts{
		Expenses:     len(env.Expenses),
		FuelLogs:     len(env.FuelLogs),
		Loans:        len(env.Loans),
		LoanPayments: len(env.LoanPayments),
		Deliveries:   len(env.Deliveries),
	}
	s.log.Info().
		Str("file", filepath.Base(path)).
		Time("created", env.Created).
		Interface("counts", counts).
		Msg("backup restored")
	return counts, nil
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileSuffix)
}
