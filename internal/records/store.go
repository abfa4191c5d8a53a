package records

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/compose-network/sendmessage-migrations/internal/infra/filesystem"
	"github.com/compose-network/sendmessage-migrations/internal/logger"
	"github.com/compose-network/sendmessage-migrations/internal/migrations"
)

const fileName = "deployments.json"

type (
	// Record is one deployed contract on one network.
	Record struct {
		Network   string    `json:"network"`
		ChainID   int       `json:"chainId,omitempty"`
		Contract  string    `json:"contract"`
		Address   string    `json:"address"`
		UpdatedAt time.Time `json:"updatedAt,omitzero"`
	}

	document struct {
		Deployments map[string]Record `json:"deployments"`
	}

	// Store persists records in <dir>/deployments.json keyed by network.
	Store struct {
		path   string
		fs     filesystem.ReadWriter
		now    func() time.Time
		logger *slog.Logger
	}
)

func NewStore(dir string, fs filesystem.ReadWriter) *Store {
	return &Store{
		path:   filepath.Join(dir, fileName),
		fs:     fs,
		now:    time.Now,
		logger: logger.Named("records_store"),
	}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Save upserts the record for r.Network.
func (s *Store) Save(r Record) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = s.now().UTC()
	}
	doc.Deployments[r.Network] = r

	if err := s.fs.WriteJSON(s.path, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", fileName, err)
	}

	s.logger.
		With("network", r.Network).
		With("address", r.Address).
		Info("deployment recorded")

	return nil
}

// Persisted returns only the records written by Save, sorted by network.
func (s *Store) Persisted() ([]Record, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return sorted(doc.Deployments), nil
}

// All merges the persisted records over migrations.KnownDeployments.
func (s *Store) All() ([]Record, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	merged := make(map[string]Record, len(migrations.KnownDeployments)+len(doc.Deployments))
	for network, address := range migrations.KnownDeployments {
		merged[network] = Record{
			Network:  network,
			Contract: migrations.ArtifactSendMessage,
			Address:  address,
		}
	}
	maps.Copy(merged, doc.Deployments)

	return sorted(merged), nil
}

func (s *Store) load() (document, error) {
	doc := document{Deployments: map[string]Record{}}

	err := s.fs.ReadJSON(s.path, &doc)
	if errors.Is(err, os.ErrNotExist) {
		return document{Deployments: map[string]Record{}}, nil
	}
	if err != nil {
		return document{}, fmt.Errorf("failed to load %s: %w", fileName, err)
	}
	if doc.Deployments == nil {
		doc.Deployments = map[string]Record{}
	}

	return doc, nil
}

func sorted(records map[string]Record) []Record {
	out := make([]Record, 0, len(records))
	for _, network := range slices.Sorted(maps.Keys(records)) {
		out = append(out, records[network])
	}
	return out
}
