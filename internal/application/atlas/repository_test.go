package atlas

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/domain/geography"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/database/redis"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

func TestRepository_FetchIsMemoized(t *testing.T) {
	src := newFakeSource()
	repo := NewRepository(src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		data, err := repo.Fetch(ctx, config.DefaultPathCountryNameToCode)
		require.NoError(t, err)
		assert.Equal(t, testNames, string(data))
	}
	assert.Equal(t, int32(1), src.Calls(config.DefaultPathCountryNameToCode))
}

func TestRepository_FailureIsMemoized(t *testing.T) {
	src := newFakeSource()
	src.fails[config.DefaultPathGeography] = errors.New(errors.ErrCodeDatasetUnavailable, "down")
	repo := NewRepository(src)
	ctx := context.Background()

	_, err := repo.Fetch(ctx, config.DefaultPathGeography)
	require.Error(t, err)

	src.mu.Lock()
	delete(src.fails, config.DefaultPathGeography)
	src.mu.Unlock()

	_, err = repo.Fetch(ctx, config.DefaultPathGeography)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetUnavailable), "no refetch after failure")
	assert.Equal(t, int32(1), src.Calls(config.DefaultPathGeography))
}

func TestRepository_ConcurrentCallersShareOneLoad(t *testing.T) {
	src := newFakeSource()
	src.delay = 20 * time.Millisecond
	repo := NewRepository(src)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := repo.Fetch(context.Background(), config.DefaultPathInstitutionMetadata)
			assert.NoError(t, err)
			assert.NotEmpty(t, data)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), src.Calls(config.DefaultPathInstitutionMetadata))
}

func TestRepository_AbandonedCallerDoesNotPoisonMemo(t *testing.T) {
	src := newFakeSource()
	src.delay = 50 * time.Millisecond
	repo := NewRepository(src)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := repo.Fetch(ctx, config.DefaultPathCountryNameToCode)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))

	data, err := repo.Fetch(context.Background(), config.DefaultPathCountryNameToCode)
	require.NoError(t, err)
	assert.Equal(t, testNames, string(data))
	assert.Equal(t, int32(1), src.Calls(config.DefaultPathCountryNameToCode))
}

func TestRepository_Snapshot(t *testing.T) {
	src := newFakeSource()
	repo := NewRepository(src, WithRepositoryLogger(logging.NewNopLogger()))

	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Degraded())
	assert.Len(t, snap.Lookups.NameToCode, 5)
	assert.Len(t, snap.Lookups.CodeToInstitution, 3)
	assert.Len(t, snap.Lookups.Institutions, 3, "non-object record skipped")
	assert.Equal(t, []string{"Japan", "France", "Chile", "Atlantis"}, featureNames(snap.Geography), "Antarctica excluded")

	again, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, again)
}

func TestRepository_SnapshotToleratesAnyFailureSubset(t *testing.T) {
	paths := []string{
		config.DefaultPathCountryNameToCode,
		config.DefaultPathCountryToInstitution,
		config.DefaultPathInstitutionMetadata,
		config.DefaultPathGeography,
	}
	for mask := 0; mask < 1<<len(paths); mask++ {
		src := newFakeSource()
		failed := 0
		for i, p := range paths {
			if mask&(1<<i) != 0 {
				src.fails[p] = errors.New(errors.ErrCodeDatasetUnavailable, "down")
				failed++
			}
		}
		snap, err := NewRepository(src).Snapshot(context.Background())
		require.NoError(t, err, "mask=%b", mask)
		assert.Len(t, snap.Failures, failed, "mask=%b", mask)
		assert.NotNil(t, snap.Lookups.NameToCode)
		assert.NotNil(t, snap.Lookups.Institutions)
		assert.NotNil(t, snap.Geography)
	}
}

func TestRepository_SnapshotMalformedDocuments(t *testing.T) {
	src := newFakeSource()
	src.docs[config.DefaultPathInstitutionMetadata] = `["not", "an", "object"]`
	src.docs[config.DefaultPathGeography] = `{"type": "GeometryCollection"}`

	snap, err := NewRepository(src).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snap.Failures, DatasetInstitutions)
	assert.Contains(t, snap.Failures, DatasetGeography)
	assert.Empty(t, snap.Lookups.Institutions)
	assert.Empty(t, snap.Geography.Features)
}

func TestRepository_CustomPathsAndExclusions(t *testing.T) {
	src := newFakeSource()
	src.docs["alt/geo.json"] = testGeo
	repo := NewRepository(src,
		WithPaths(config.DatasetPaths{
			CountryNameToCode:    config.DefaultPathCountryNameToCode,
			CountryToInstitution: config.DefaultPathCountryToInstitution,
			InstitutionMetadata:  config.DefaultPathInstitutionMetadata,
			Geography:            "alt/geo.json",
		}),
		WithExcludeISOA2("AQ", "AT"),
	)
	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan", "France", "Chile"}, featureNames(snap.Geography))
}

func TestRepository_RedisTier(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(&redis.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()
	cache := redis.NewRedisCache(client, logging.NewNopLogger(), redis.WithPrefix("t:"))

	first := newFakeSource()
	_, err = NewRepository(first, WithCache(cache, time.Hour)).Fetch(context.Background(), config.DefaultPathCountryNameToCode)
	require.NoError(t, err)
	assert.True(t, mr.Exists("t:"+config.DefaultPathCountryNameToCode))

	// A second process reads through the shared tier without touching its source.
	second := newFakeSource()
	data, err := NewRepository(second, WithCache(cache, time.Hour)).Fetch(context.Background(), config.DefaultPathCountryNameToCode)
	require.NoError(t, err)
	assert.Equal(t, testNames, string(data))
	assert.Equal(t, int32(0), second.Calls(config.DefaultPathCountryNameToCode))
}

func TestRepository_RedisDownFallsBackToSource(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(&redis.RedisConfig{Addr: mr.Addr(), MaxRetries: -1}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()
	mr.Close()

	src := newFakeSource()
	repo := NewRepository(src, WithCache(redis.NewRedisCache(client, logging.NewNopLogger()), time.Hour))
	data, err := repo.Fetch(context.Background(), config.DefaultPathCountryToInstitution)
	require.NoError(t, err)
	assert.Equal(t, testCodes, string(data))
}

func TestRepository_Close(t *testing.T) {
	src := newFakeSource()
	repo := NewRepository(src)
	_, err := repo.Snapshot(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())

	_, err = repo.Fetch(context.Background(), config.DefaultPathGeography)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetClosed))
	_, err = repo.Snapshot(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetClosed))
	assert.True(t, errors.IsCode(repo.Ping(context.Background()), errors.ErrCodeDatasetClosed))
}

func featureNames(c *geography.Collection) []string {
	names := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		if f.Name != "" {
			names = append(names, f.Name)
		}
	}
	return names
}

//Personal.AI order the ending
