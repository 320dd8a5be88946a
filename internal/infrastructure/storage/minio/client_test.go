package minio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/CentralBankTalk/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// fakeS3 answers the path-style bucket HEAD and object GET requests the
// dataset source issues.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]map[string]string
	gets    []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	objects, ok := f.buckets[parts[0]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(parts) == 1 || parts[1] == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	f.gets = append(f.gets, parts[1])
	body, ok := objects[parts[1]]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
	w.Header().Set("Last-Modified", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (f *fakeS3) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.gets...)
}

type ClientTestSuite struct {
	suite.Suite
	fake   *fakeS3
	server *httptest.Server
	cfg    *MinIOConfig
}

func (s *ClientTestSuite) SetupTest() {
	s.fake = &fakeS3{buckets: map[string]map[string]string{
		"cbtalk-data": {
			"public/data/country_name_to_iso3.json": `{"Japan":"JPN"}`,
		},
	}}
	s.server = httptest.NewServer(s.fake)

	u, err := url.Parse(s.server.URL)
	s.Require().NoError(err)
	s.cfg = &MinIOConfig{
		Endpoint:        u.Host,
		AccessKeyID:     "test",
		SecretAccessKey: "testtest",
		Prefix:          "/public/data/",
	}
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) TestApplyDefaults() {
	cfg := &MinIOConfig{}
	applyDefaults(cfg)
	s.Equal("us-east-1", cfg.Region)
	s.Equal("cbtalk-data", cfg.Bucket)
}

func (s *ClientTestSuite) TestNewMinIOClient_MissingBucket() {
	s.cfg.Bucket = "absent"
	_, err := NewMinIOClient(s.cfg, logging.NewNopLogger())
	s.Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeDatasetUnavailable))
}

func (s *ClientTestSuite) TestFetch() {
	client, err := NewMinIOClient(s.cfg, logging.NewNopLogger())
	s.Require().NoError(err)
	src := NewDatasetSource(client)
	s.Equal("minio://cbtalk-data", src.Name())

	data, err := src.Fetch(context.Background(), "country_name_to_iso3.json")
	s.Require().NoError(err)
	s.JSONEq(`{"Japan":"JPN"}`, string(data))
	s.Contains(s.fake.requested(), "public/data/country_name_to_iso3.json")

	s.NoError(src.Ping(context.Background()))
}

func (s *ClientTestSuite) TestFetch_NotFound() {
	client, err := NewMinIOClient(s.cfg, logging.NewNopLogger())
	s.Require().NoError(err)

	_, err = NewDatasetSource(client).Fetch(context.Background(), "world_map.json")
	s.Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeDatasetNotFound))
}

func (s *ClientTestSuite) TestFetch_Closed() {
	client, err := NewMinIOClient(s.cfg, logging.NewNopLogger())
	s.Require().NoError(err)
	s.NoError(client.Close())

	_, err = NewDatasetSource(client).Fetch(context.Background(), "country_name_to_iso3.json")
	s.Equal(ErrMinIOClientClosed, err)
	s.Equal(ErrMinIOClientClosed, client.HealthCheck(context.Background()))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestObjectKey(t *testing.T) {
	src := NewDatasetSource(NewMinIOClientFromAPI(nil, &MinIOConfig{Prefix: "data"}, nil))
	assert.Equal(t, "data/world_map.json", src.objectKey("world_map.json"))
	assert.Equal(t, "data/central_banks/meta.json", src.objectKey("/central_banks/meta.json"))
	assert.Equal(t, "data/etc/passwd", src.objectKey("../../etc/passwd"))

	bare := NewDatasetSource(NewMinIOClientFromAPI(nil, nil, nil))
	require.Equal(t, "world_map.json", bare.objectKey("world_map.json"))
}

//Personal.AI order the ending
