package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"patient-record-manager/internal/domain/entity"
	domainRepo "patient-record-manager/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// savedQueryFileRepository stores a JSON object on disk whose keys play the
// role of browser storage keys; the saved list lives under one fixed key.
type savedQueryFileRepository struct {
	fs   afero.Fs
	path string
	key  string
	log  *logrus.Logger
	mu   sync.Mutex
}

func NewSavedQueryFileRepository(fs afero.Fs, path, key string, log *logrus.Logger) domainRepo.SavedQueryRepository {
	return &savedQueryFileRepository{fs: fs, path: path, key: key, log: log}
}

func (r *savedQueryFileRepository) FindAll(ctx context.Context) ([]entity.SavedQuery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.readStore()
	if err != nil {
		return nil, err
	}
	return r.decode(store), nil
}

func (r *savedQueryFileRepository) Save(ctx context.Context, query entity.SavedQuery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.readStore()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(append(r.decode(store), query))
	if err != nil {
		return err
	}
	store[r.key] = encoded

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(r.fs, r.path, data, 0o644)
}

func (r *savedQueryFileRepository) readStore() (map[string]json.RawMessage, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	store := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &store); err != nil {
		r.log.Warnf("Ignoring unreadable saved query file %s: %+v", r.path, err)
		return map[string]json.RawMessage{}, nil
	}
	return store, nil
}

func (r *savedQueryFileRepository) decode(store map[string]json.RawMessage) []entity.SavedQuery {
	raw, ok := store[r.key]
	if !ok {
		return []entity.SavedQuery{}
	}
	var queries []entity.SavedQuery
	if err := json.Unmarshal(raw, &queries); err != nil || queries == nil {
		if err != nil {
			r.log.Warnf("Ignoring unreadable saved queries under %q: %+v", r.key, err)
		}
		return []entity.SavedQuery{}
	}
	return queries
}
