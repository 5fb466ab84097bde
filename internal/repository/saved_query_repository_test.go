package repository

import (
	"context"
	"testing"

	"patient-record-manager/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSavedQueryRedisRepository_SaveAndList(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewSavedQueryRedisRepository(client, entity.SavedQueriesKey, testLogger())
	ctx := context.Background()

	queries, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, queries)

	require.NoError(t, repo.Save(ctx, entity.SavedQuery{Name: "Women", Query: "SELECT * FROM patients WHERE gender = 'Female'"}))
	require.NoError(t, repo.Save(ctx, entity.SavedQuery{Name: "Count", Query: "SELECT COUNT(*) FROM patients"}))

	queries, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, "Women", queries[0].Name)
	assert.Equal(t, "Count", queries[1].Name)

	stored, err := mr.Get(entity.SavedQueriesKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Women","query":"SELECT * FROM patients WHERE gender = 'Female'"},{"name":"Count","query":"SELECT COUNT(*) FROM patients"}]`, stored)
}

func TestSavedQueryRedisRepository_CorruptValueReadsEmpty(t *testing.T) {
	mr, client := setupTestRedis(t)
	require.NoError(t, mr.Set(entity.SavedQueriesKey, "{not json"))
	repo := NewSavedQueryRedisRepository(client, entity.SavedQueriesKey, testLogger())

	queries, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestSavedQueryFileRepository_SaveAndList(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewSavedQueryFileRepository(fs, "saved-queries.json", entity.SavedQueriesKey, testLogger())
	ctx := context.Background()

	queries, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, queries)

	require.NoError(t, repo.Save(ctx, entity.SavedQuery{Name: "Recent", Query: "SELECT * FROM patients ORDER BY id DESC"}))

	// A fresh repository over the same filesystem sees the saved entry.
	reopened := NewSavedQueryFileRepository(fs, "saved-queries.json", entity.SavedQueriesKey, testLogger())
	queries, err = reopened.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, "Recent", queries[0].Name)

	data, err := afero.ReadFile(fs, "saved-queries.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"userQueries"`)
}

func TestSavedQueryFileRepository_PreservesOtherKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "store.json", []byte(`{"theme":"dark"}`), 0o644))
	repo := NewSavedQueryFileRepository(fs, "store.json", entity.SavedQueriesKey, testLogger())

	require.NoError(t, repo.Save(context.Background(), entity.SavedQuery{Name: "All", Query: "SELECT * FROM patients"}))

	data, err := afero.ReadFile(fs, "store.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
}

func TestSavedQueryFileRepository_CorruptFileReadsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "store.json", []byte("garbage"), 0o644))
	repo := NewSavedQueryFileRepository(fs, "store.json", entity.SavedQueriesKey, testLogger())

	queries, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, queries)
}
