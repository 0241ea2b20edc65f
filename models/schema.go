package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// FieldKind is the scalar or list shape a stored field takes.
type FieldKind string

const (
	KindText           FieldKind = "text"
	KindInteger        FieldKind = "integer"
	KindNumber         FieldKind = "number"
	KindTextList       FieldKind = "text_list"
	KindMoveset        FieldKind = "moveset"
	KindEvolutionChain FieldKind = "evolution_chain"
)

// Field declares one stored field. Name is the document key, Column the
// relational column used by the postgres backend.
type Field struct {
	Name     string
	Column   string
	Kind     FieldKind
	Required bool
}

// Schema is the fixed field set of one collection.
type Schema struct {
	Collection string
	Table      string
	Fields     []Field
}

// Document is implemented by every record that can be inserted.
// FieldValues maps document keys to their current values; absent optional
// values are reported as nil.
type Document interface {
	FieldValues() map[string]any
}

// Record is a Document that receives a store-assigned identity on insert.
type Record interface {
	Document
	Identity() (id string, createdAt time.Time)
	SetIdentity(id string, createdAt time.Time)
}

var ErrValidation = errors.New("validation failed")

// ValidationError lists every field problem found in a record.
type ValidationError struct {
	Collection string
	Problems   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Collection, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for a collection.
func NewValidationError(collection string, problems ...string) *ValidationError {
	return &ValidationError{Collection: collection, Problems: problems}
}

// Lookup returns the declared field with the given document key.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SchemaFor returns the schema of a named collection.
func SchemaFor(collection string) (Schema, bool) {
	switch collection {
	case CreatureCollection:
		return CreatureSchema, true
	case MoveCollection:
		return MoveSchema, true
	}
	return Schema{}, false
}

// Validate checks doc against the schema and returns a *ValidationError when
// any required field is absent or any present field has the wrong shape.
func (s Schema) Validate(doc Document) error {
	values := doc.FieldValues()
	var problems []string

	for _, f := range s.Fields {
		v, ok := values[f.Name]
		if !ok || isAbsent(v) {
			if f.Required {
				problems = append(problems, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}
		if p := checkKind(f, v); p != "" {
			problems = append(problems, p)
		}
	}

	if len(problems) > 0 {
		return NewValidationError(s.Collection, problems...)
	}
	return nil
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case *int:
		return t == nil
	case *float64:
		return t == nil
	case []string:
		return t == nil
	case []MoveSetEntry:
		return t == nil
	case []EvolutionStep:
		return t == nil
	}
	return false
}

func checkKind(f Field, v any) string {
	switch f.Kind {
	case KindText:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("%s must be text", f.Name)
		}
	case KindInteger:
		if _, ok := v.(*int); !ok {
			return fmt.Sprintf("%s must be an integer", f.Name)
		}
	case KindNumber:
		n, ok := v.(*float64)
		if !ok {
			return fmt.Sprintf("%s must be a number", f.Name)
		}
		if math.IsNaN(*n) || math.IsInf(*n, 0) {
			return fmt.Sprintf("%s must be a finite number", f.Name)
		}
	case KindTextList:
		if _, ok := v.([]string); !ok {
			return fmt.Sprintf("%s must be a list of text", f.Name)
		}
	case KindMoveset:
		entries, ok := v.([]MoveSetEntry)
		if !ok {
			return fmt.Sprintf("%s must be a moveset", f.Name)
		}
		for i, e := range entries {
			if e.LevelLearned < 0 {
				return fmt.Sprintf("%s[%d].levelLearned must be a non-negative number", f.Name, i)
			}
			if strings.TrimSpace(e.MoveName) == "" {
				return fmt.Sprintf("%s[%d].moveName is required", f.Name, i)
			}
		}
	case KindEvolutionChain:
		if _, ok := v.([]EvolutionStep); !ok {
			return fmt.Sprintf("%s must be an evolution chain", f.Name)
		}
	}
	return ""
}
