package external

import (
	"context"
	"net/url"
	"sync"

	"catalogapi.app/internal/ports"
)

type logEntry struct {
	level   string
	message string
	fields  map[string]interface{}
}

// testLogger captures log entries for assertions
type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) log(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := logEntry{level: level, message: msg, fields: map[string]interface{}{}}
	for _, f := range fields {
		entry.fields[f.Key] = f.Value
	}
	l.entries = append(l.entries, entry)
}

func (l *testLogger) Debug(msg string, fields ...ports.Field) { l.log("DEBUG", msg, fields) }
func (l *testLogger) Info(msg string, fields ...ports.Field)  { l.log("INFO", msg, fields) }
func (l *testLogger) Warn(msg string, fields ...ports.Field)  { l.log("WARN", msg, fields) }
func (l *testLogger) Error(msg string, fields ...ports.Field) { l.log("ERROR", msg, fields) }

// testCatalogProvider returns a canned body and counts calls
type testCatalogProvider struct {
	mu    sync.Mutex
	body  []byte
	err   error
	calls int
}

func (p *testCatalogProvider) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.body, p.err
}

func (p *testCatalogProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type testCacheMetrics struct {
	hits, misses map[string]int
}

func newTestCacheMetrics() *testCacheMetrics {
	return &testCacheMetrics{hits: map[string]int{}, misses: map[string]int{}}
}

func (m *testCacheMetrics) RecordHit(cacheType string)  { m.hits[cacheType]++ }
func (m *testCacheMetrics) RecordMiss(cacheType string) { m.misses[cacheType]++ }
