package atlas

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/turtacn/CentralBankTalk/internal/config"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

const (
	testNames = `{"Japan":"JPN","France":"FRA","Chile":"CHL","Atlantis":"ATL","Antarctica":"ATA"}`
	testCodes = `{"JPN":"bank_of_japan","FRA":"banque_de_france","CHL":"banco_central_de_chile"}`
	testMeta  = `{
		"bank_of_japan": {"name": "Bank of Japan", "number_of_speeches": 100,
			"policy_pressures": {"monetary": 0.5}},
		"banque_de_france": {"number_of_speeches": 25},
		"banco_central_de_chile": {"name": "Banco Central de Chile"},
		"broken": [1]
	}`
	testGeo = `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "Japan", "ISO_A2": "JP"}, "geometry": null},
			{"type": "Feature", "properties": {"name": "France", "ISO_A2": "FR"}, "geometry": null},
			{"type": "Feature", "properties": {"name": "Chile", "ISO_A2": "CL"}, "geometry": null},
			{"type": "Feature", "properties": {"name": "Atlantis", "ISO_A2": "AT"}, "geometry": null},
			{"type": "Feature", "properties": {"name": "Antarctica", "ISO_A2": "AQ"}, "geometry": null}
		]
	}`
)

// fakeSource serves documents from memory and counts fetches per path.
type fakeSource struct {
	mu    sync.Mutex
	docs  map[string]string
	fails map[string]error
	calls map[string]*int32
	delay time.Duration
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		docs: map[string]string{
			config.DefaultPathCountryNameToCode:    testNames,
			config.DefaultPathCountryToInstitution: testCodes,
			config.DefaultPathInstitutionMetadata:  testMeta,
			config.DefaultPathGeography:            testGeo,
		},
		fails: map[string]error{},
		calls: map[string]*int32{},
	}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) counter(path string) *int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.calls[path]
	if !ok {
		c = new(int32)
		f.calls[path] = c
	}
	return c
}

func (f *fakeSource) Calls(path string) int32 {
	return atomic.LoadInt32(f.counter(path))
}

func (f *fakeSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	atomic.AddInt32(f.counter(path), 1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fails[path]; ok {
		return nil, err
	}
	doc, ok := f.docs[path]
	if !ok {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "not found").WithDetail(path)
	}
	return []byte(doc), nil
}

//Personal.AI order the ending
