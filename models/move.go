// models/move.go
package models

import "time"

const MoveCollection = "Moves"

// Move is an entry of the move catalog. It is independent of any Creature's
// moveset.
type Move struct {
	ID          string   `json:"_id" bson:"_id" gorm:"primaryKey"`
	Name        string   `json:"name" bson:"name" gorm:"index;not null"`
	Type        string   `json:"type" bson:"type" gorm:"not null"`
	Category    string   `json:"category" bson:"category" gorm:"not null"`
	Power       *float64 `json:"power" bson:"power" gorm:"not null"`
	PowerPoints *float64 `json:"powerPoints" bson:"powerPoints" gorm:"not null"`
	Accuracy    *float64 `json:"accuracy" bson:"accuracy" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (Move) TableName() string {
	return "moves"
}

var MoveSchema = Schema{
	Collection: MoveCollection,
	Table:      "moves",
	Fields: []Field{
		{Name: "name", Column: "name", Kind: KindText, Required: true},
		{Name: "type", Column: "type", Kind: KindText, Required: true},
		{Name: "category", Column: "category", Kind: KindText, Required: true},
		{Name: "power", Column: "power", Kind: KindNumber, Required: true},
		{Name: "powerPoints", Column: "power_points", Kind: KindNumber, Required: true},
		{Name: "accuracy", Column: "accuracy", Kind: KindNumber, Required: true},
	},
}

func (m *Move) FieldValues() map[string]any {
	return map[string]any{
		"name":        m.Name,
		"type":        m.Type,
		"category":    m.Category,
		"power":       m.Power,
		"powerPoints": m.PowerPoints,
		"accuracy":    m.Accuracy,
	}
}

func (m *Move) Identity() (string, time.Time) { return m.ID, m.CreatedAt }

func (m *Move) SetIdentity(id string, createdAt time.Time) {
	m.ID = id
	m.CreatedAt = createdAt
}
