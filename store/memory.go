package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"pokedex-catalog/models"
)

// MemoryBackend keeps collections as JSON documents in insertion order.
// Used by tests and by STORE_DRIVER=memory.
type MemoryBackend struct {
	mu          sync.RWMutex
	collections map[string][]json.RawMessage
	failure     error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string][]json.RawMessage)}
}

// SetFailure makes every following call return err until cleared with nil.
func (m *MemoryBackend) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// Len reports how many records a collection holds.
func (m *MemoryBackend) Len(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

func (m *MemoryBackend) ListAll(ctx context.Context, schema models.Schema, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return m.failure
	}

	docs := m.collections[schema.Collection]
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, d := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(d)
	}
	buf.WriteByte(']')
	return json.Unmarshal(buf.Bytes(), out)
}

func (m *MemoryBackend) FindOne(ctx context.Context, schema models.Schema, field models.Field, value any, out any) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return false, m.failure
	}

	for _, d := range m.collections[schema.Collection] {
		var fields map[string]any
		dec := json.NewDecoder(bytes.NewReader(d))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			return false, err
		}
		if !fieldMatches(field.Kind, fields[field.Name], value) {
			continue
		}
		return true, json.Unmarshal(d, out)
	}
	return false, nil
}

// fieldMatches compares a decoded document value with a lookup value already
// coerced to the field's kind.
func fieldMatches(kind models.FieldKind, got, want any) bool {
	switch kind {
	case models.KindInteger, models.KindNumber:
		num, ok := got.(json.Number)
		if !ok {
			return false
		}
		g, err := num.Float64()
		if err != nil {
			return false
		}
		switch w := want.(type) {
		case int:
			return g == float64(w)
		case int64:
			return g == float64(w)
		case float64:
			return g == w
		}
		return false
	}
	g, ok := got.(string)
	if !ok {
		return false
	}
	return g == fmt.Sprint(want)
}

func (m *MemoryBackend) Insert(ctx context.Context, schema models.Schema, doc models.Record) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return m.failure
	}
	m.collections[schema.Collection] = append(m.collections[schema.Collection], raw)
	return nil
}

func (m *MemoryBackend) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failure
}

func (m *MemoryBackend) Close(ctx context.Context) error {
	return nil
}
