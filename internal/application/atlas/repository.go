// Package atlas is the application layer of the choropleth: it loads the
// dataset documents once per process and answers every map question from
// that immutable snapshot.
package atlas

import (
	"context"
	"path"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/internal/domain/choropleth"
	"github.com/turtacn/CentralBankTalk/internal/domain/geography"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/database/redis"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/datasource"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Cache tier labels.
const (
	tierMemory = "memory"
	tierRedis  = "redis"
)

// Dataset names used in logs, metrics and snapshot failures.
const (
	DatasetNameToCode   = "country_name_to_code"
	DatasetCodeToInst   = "country_to_institution"
	DatasetInstitutions = "institution_metadata"
	DatasetGeography    = "geography"
)

type entry struct {
	data []byte
	err  error
}

// Repository fetches dataset documents through a Source and memoizes every
// outcome, failures included, for its whole lifetime. Nothing is refetched
// or invalidated; a new process (or a new Repository) is the only refresh.
type Repository struct {
	source   datasource.Source
	cache    redis.PayloadCache
	cacheTTL time.Duration
	paths    config.DatasetPaths
	exclude  []string
	timeout  time.Duration
	logger   logging.Logger
	metrics  *prometheus.AppMetrics

	group singleflight.Group

	mu       sync.Mutex
	entries  map[string]entry
	snapshot *Snapshot
	closed   bool
}

type RepositoryOption func(*Repository)

// WithCache adds a shared second tier consulted before the source.
func WithCache(c redis.PayloadCache, ttl time.Duration) RepositoryOption {
	return func(r *Repository) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

func WithPaths(p config.DatasetPaths) RepositoryOption {
	return func(r *Repository) { r.paths = p }
}

// WithExcludeISOA2 drops boundary features by ISO 3166-1 alpha-2 code.
func WithExcludeISOA2(codes ...string) RepositoryOption {
	return func(r *Repository) { r.exclude = append([]string(nil), codes...) }
}

// WithFetchTimeout bounds a single load. Loads outlive the caller's context
// so that one impatient caller cannot poison the memo for everyone.
func WithFetchTimeout(d time.Duration) RepositoryOption {
	return func(r *Repository) { r.timeout = d }
}

func WithRepositoryLogger(l logging.Logger) RepositoryOption {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithRepositoryMetrics(m *prometheus.AppMetrics) RepositoryOption {
	return func(r *Repository) { r.metrics = m }
}

func NewRepository(source datasource.Source, opts ...RepositoryOption) *Repository {
	r := &Repository{
		source: source,
		paths: config.DatasetPaths{
			CountryNameToCode:     config.DefaultPathCountryNameToCode,
			CountryToInstitution:  config.DefaultPathCountryToInstitution,
			InstitutionMetadata:   config.DefaultPathInstitutionMetadata,
			Geography:             config.DefaultPathGeography,
			InstitutionHistoryDir: config.DefaultPathInstitutionHistory,
		},
		exclude: append([]string(nil), config.DefaultExcludeISOA2...),
		timeout: config.DefaultFetchTimeout,
		logger:  logging.NewNopLogger(),
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("atlas.repository")
	return r
}

// Fetch returns the document at path. Concurrent callers share one load.
// A caller whose context ends stops waiting, but the load itself completes
// and is memoized.
func (r *Repository) Fetch(ctx context.Context, path string) ([]byte, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.New(errors.ErrCodeDatasetClosed, "repository is closed")
	}
	if e, ok := r.entries[path]; ok {
		r.mu.Unlock()
		prometheus.RecordCacheAccess(r.metrics, tierMemory, true)
		return e.data, e.err
	}
	r.mu.Unlock()
	prometheus.RecordCacheAccess(r.metrics, tierMemory, false)

	ch := r.group.DoChan(path, func() (interface{}, error) {
		return r.load(context.WithoutCancel(ctx), path), nil
	})
	select {
	case res := <-ch:
		e := res.Val.(entry)
		return e.data, e.err
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "dataset fetch abandoned").WithDetail(path)
	}
}

func (r *Repository) load(ctx context.Context, path string) entry {
	r.mu.Lock()
	if e, ok := r.entries[path]; ok {
		r.mu.Unlock()
		return e
	}
	r.mu.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	e := r.loadThroughCache(ctx, path)

	r.mu.Lock()
	if !r.closed {
		r.entries[path] = e
	}
	r.mu.Unlock()
	return e
}

func (r *Repository) loadThroughCache(ctx context.Context, path string) entry {
	if r.cache != nil {
		data, err := r.cache.Get(ctx, path)
		switch {
		case err == nil:
			prometheus.RecordCacheAccess(r.metrics, tierRedis, true)
			return entry{data: data}
		case err == redis.ErrCacheMiss:
			prometheus.RecordCacheAccess(r.metrics, tierRedis, false)
		default:
			r.logger.Warn("Dataset cache read failed", logging.String("path", path), logging.Err(err))
		}
	}

	start := time.Now()
	data, err := r.source.Fetch(ctx, path)
	prometheus.RecordDatasetFetch(r.metrics, path, time.Since(start), err)
	if err != nil {
		r.logger.Warn("Dataset fetch failed",
			logging.String("source", r.source.Name()),
			logging.String("path", path),
			logging.Err(err),
		)
		return entry{err: err}
	}
	r.logger.Debug("Dataset fetched",
		logging.String("path", path),
		logging.Int("bytes", len(data)),
		logging.Duration("duration", time.Since(start)),
	)

	if r.cache != nil {
		if err := r.cache.Set(ctx, path, data, r.cacheTTL); err != nil {
			r.logger.Warn("Dataset cache write failed", logging.String("path", path), logging.Err(err))
		}
	}
	return entry{data: data}
}

// HistoryPath is the document holding one institution's yearly series.
func (r *Repository) HistoryPath(key string) string {
	return path.Join(r.paths.InstitutionHistoryDir, key+".json")
}

// Snapshot is one immutable, fully joined view of the datasets.
type Snapshot struct {
	Lookups   choropleth.Lookups
	Geography *geography.Collection
	// Failures maps a dataset name to the reason it degraded to empty.
	Failures map[string]string
}

// Degraded reports whether any dataset failed to load.
func (s *Snapshot) Degraded() bool {
	return len(s.Failures) > 0
}

// Snapshot loads and decodes the four datasets concurrently. A dataset that
// fails to fetch or decode is replaced by an empty one and recorded in
// Failures; Snapshot itself only fails when the repository is closed or ctx
// ends. The first complete snapshot is reused.
func (r *Repository) Snapshot(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.New(errors.ErrCodeDatasetClosed, "repository is closed")
	}
	if r.snapshot != nil {
		s := r.snapshot
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	var (
		nameToCode   map[string]string
		codeToInst   map[string]string
		institutions map[string]choropleth.Institution
		geo          *geography.Collection
		failMu       sync.Mutex
		failures     = map[string]string{}
	)
	fail := func(name string, err error) {
		failMu.Lock()
		failures[name] = err.Error()
		failMu.Unlock()
		r.logger.Warn("Dataset degraded to empty", logging.String("dataset", name), logging.Err(err))
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nameToCode = r.stringMap(gCtx, DatasetNameToCode, r.paths.CountryNameToCode, fail)
		return nil
	})
	g.Go(func() error {
		codeToInst = r.stringMap(gCtx, DatasetCodeToInst, r.paths.CountryToInstitution, fail)
		return nil
	})
	g.Go(func() error {
		institutions = map[string]choropleth.Institution{}
		raw, err := r.Fetch(gCtx, r.paths.InstitutionMetadata)
		if err != nil {
			fail(DatasetInstitutions, err)
			return nil
		}
		decoded, report, err := choropleth.DecodeInstitutions(raw)
		if err != nil {
			fail(DatasetInstitutions, err)
			return nil
		}
		if len(report.Skipped) > 0 {
			r.logger.Warn("Skipped malformed institution records",
				logging.Int("count", len(report.Skipped)),
				logging.Any("ids", report.Skipped),
			)
		}
		r.recordRecords(DatasetInstitutions, report.Accepted)
		institutions = decoded
		return nil
	})
	g.Go(func() error {
		geo = &geography.Collection{}
		raw, err := r.Fetch(gCtx, r.paths.Geography)
		if err != nil {
			fail(DatasetGeography, err)
			return nil
		}
		decoded, err := geography.Decode(raw)
		if err != nil {
			fail(DatasetGeography, err)
			return nil
		}
		geo = decoded.Exclude(r.exclude...)
		r.recordRecords(DatasetGeography, len(geo.Features))
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "snapshot abandoned")
	}

	snap := &Snapshot{
		Lookups:   choropleth.NewLookups(nameToCode, codeToInst, institutions),
		Geography: geo,
		Failures:  failures,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, errors.New(errors.ErrCodeDatasetClosed, "repository is closed")
	}
	if r.snapshot == nil {
		r.snapshot = snap
		if snap.Degraded() {
			r.logger.Warn("Atlas snapshot built with degraded datasets", logging.Int("failed", len(failures)))
		} else {
			r.logger.Info("Atlas snapshot built",
				logging.Int("names", len(nameToCode)),
				logging.Int("institutions", len(institutions)),
				logging.Int("features", len(geo.Features)),
			)
		}
	}
	return r.snapshot, nil
}

func (r *Repository) stringMap(ctx context.Context, name, path string, fail func(string, error)) map[string]string {
	raw, err := r.Fetch(ctx, path)
	if err != nil {
		fail(name, err)
		return map[string]string{}
	}
	m, report, err := choropleth.DecodeStringMap(raw)
	if err != nil {
		fail(name, err)
		return map[string]string{}
	}
	if len(report.Skipped) > 0 {
		r.logger.Warn("Skipped malformed mapping entries",
			logging.String("dataset", name),
			logging.Int("count", len(report.Skipped)),
		)
	}
	r.recordRecords(name, report.Accepted)
	return m
}

func (r *Repository) recordRecords(dataset string, n int) {
	if r.metrics == nil {
		return
	}
	r.metrics.DatasetRecords.WithLabelValues(dataset).Set(float64(n))
}

// Ping checks the source when it supports a reachability check.
func (r *Repository) Ping(ctx context.Context) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return errors.New(errors.ErrCodeDatasetClosed, "repository is closed")
	}
	if p, ok := r.source.(datasource.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// SourceName identifies the backing source.
func (r *Repository) SourceName() string {
	return r.source.Name()
}

// Close releases the memo. Further calls fail with DATASET_005.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.entries = nil
	r.snapshot = nil
	r.logger.Info("Dataset repository closed")
	return nil
}

//Personal.AI order the ending
