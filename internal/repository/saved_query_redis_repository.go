package repository

import (
	"context"
	"encoding/json"
	"errors"

	"patient-record-manager/internal/domain/entity"
	domainRepo "patient-record-manager/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const maxSaveRetries = 3

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// savedQueryRedisRepository keeps the whole list as one JSON array under a
// single key, the same shape the console used in browser storage.
type savedQueryRedisRepository struct {
	client *redis.Client
	key    string
	log    *logrus.Logger
}

func NewSavedQueryRedisRepository(client *redis.Client, key string, log *logrus.Logger) domainRepo.SavedQueryRepository {
	return &savedQueryRedisRepository{client: client, key: key, log: log}
}

func (r *savedQueryRedisRepository) FindAll(ctx context.Context) ([]entity.SavedQuery, error) {
	return r.load(ctx, r.client)
}

func (r *savedQueryRedisRepository) Save(ctx context.Context, query entity.SavedQuery) error {
	txf := func(tx *redis.Tx) error {
		queries, err := r.load(ctx, tx)
		if err != nil {
			return err
		}
		data, err := json.Marshal(append(queries, query))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxSaveRetries; i++ {
		err := r.client.Watch(ctx, txf, r.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

func (r *savedQueryRedisRepository) load(ctx context.Context, cmd stringGetter) ([]entity.SavedQuery, error) {
	raw, err := cmd.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []entity.SavedQuery{}, nil
		}
		return nil, err
	}

	var queries []entity.SavedQuery
	if err := json.Unmarshal(raw, &queries); err != nil {
		r.log.Warnf("Ignoring unreadable saved queries under %q: %+v", r.key, err)
		return []entity.SavedQuery{}, nil
	}
	if queries == nil {
		queries = []entity.SavedQuery{}
	}
	return queries, nil
}
