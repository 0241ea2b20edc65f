// models/creature.go
package models

import "time"

const CreatureCollection = "Pokedex"

// Creature is a catalog entry for one pokemon.
type Creature struct {
	ID        string   `json:"_id" bson:"_id" gorm:"primaryKey"`
	Name      string   `json:"name" bson:"name" gorm:"index;not null"`
	CatalogID *int     `json:"catalogId" bson:"catalogId" gorm:"index;not null"`
	Weight    *float64 `json:"weight" bson:"weight" gorm:"not null"`
	Height    *float64 `json:"height" bson:"height" gorm:"not null"`

	// Base stats, all optional
	HP             *float64 `json:"hp,omitempty" bson:"hp,omitempty"`
	Attack         *float64 `json:"attack,omitempty" bson:"attack,omitempty"`
	Defense        *float64 `json:"defense,omitempty" bson:"defense,omitempty"`
	Speed          *float64 `json:"speed,omitempty" bson:"speed,omitempty"`
	SpecialAttack  *float64 `json:"specialAttack,omitempty" bson:"specialAttack,omitempty"`
	SpecialDefense *float64 `json:"specialDefense,omitempty" bson:"specialDefense,omitempty"`
	CatchRate      *float64 `json:"catchRate,omitempty" bson:"catchRate,omitempty"`

	Description   string   `json:"description" bson:"description" gorm:"type:text;not null"`
	ElementalType []string `json:"elementalType" bson:"elementalType" gorm:"serializer:json"`
	Strength      []string `json:"strength" bson:"strength" gorm:"serializer:json"`
	Weakness      []string `json:"weakness" bson:"weakness" gorm:"serializer:json"`
	MainPicture   string   `json:"mainPicture" bson:"mainPicture" gorm:"not null"`

	Moveset        []MoveSetEntry  `json:"moveset" bson:"moveset" gorm:"serializer:json"`
	EvolutionChain []EvolutionStep `json:"evolutionChain" bson:"evolutionChain" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// MoveSetEntry is one learnable move. It carries only the move's name; no
// Move record has to exist for it.
type MoveSetEntry struct {
	LevelLearned int    `json:"levelLearned" bson:"levelLearned"`
	MoveName     string `json:"moveName" bson:"moveName"`
}

type EvolutionStep struct {
	Pokemon EvolutionTarget `json:"pokemon" bson:"pokemon"`
}

type EvolutionTarget struct {
	Name         string `json:"name" bson:"name"`
	LevelEvolved int    `json:"levelEvolved" bson:"levelEvolved"`
}

func (Creature) TableName() string {
	return "creatures"
}

var CreatureSchema = Schema{
	Collection: CreatureCollection,
	Table:      "creatures",
	Fields: []Field{
		{Name: "name", Column: "name", Kind: KindText, Required: true},
		{Name: "catalogId", Column: "catalog_id", Kind: KindInteger, Required: true},
		{Name: "weight", Column: "weight", Kind: KindNumber, Required: true},
		{Name: "height", Column: "height", Kind: KindNumber, Required: true},
		{Name: "hp", Column: "hp", Kind: KindNumber},
		{Name: "attack", Column: "attack", Kind: KindNumber},
		{Name: "defense", Column: "defense", Kind: KindNumber},
		{Name: "speed", Column: "speed", Kind: KindNumber},
		{Name: "specialAttack", Column: "special_attack", Kind: KindNumber},
		{Name: "specialDefense", Column: "special_defense", Kind: KindNumber},
		{Name: "catchRate", Column: "catch_rate", Kind: KindNumber},
		{Name: "description", Column: "description", Kind: KindText, Required: true},
		{Name: "elementalType", Column: "elemental_type", Kind: KindTextList, Required: true},
		{Name: "strength", Column: "strength", Kind: KindTextList, Required: true},
		{Name: "weakness", Column: "weakness", Kind: KindTextList, Required: true},
		{Name: "mainPicture", Column: "main_picture", Kind: KindText, Required: true},
		{Name: "moveset", Column: "moveset", Kind: KindMoveset},
		{Name: "evolutionChain", Column: "evolution_chain", Kind: KindEvolutionChain},
	},
}

func (c *Creature) FieldValues() map[string]any {
	return map[string]any{
		"name":           c.Name,
		"catalogId":      c.CatalogID,
		"weight":         c.Weight,
		"height":         c.Height,
		"hp":             c.HP,
		"attack":         c.Attack,
		"defense":        c.Defense,
		"speed":          c.Speed,
		"specialAttack":  c.SpecialAttack,
		"specialDefense": c.SpecialDefense,
		"catchRate":      c.CatchRate,
		"description":    c.Description,
		"elementalType":  c.ElementalType,
		"strength":       c.Strength,
		"weakness":       c.Weakness,
		"mainPicture":    c.MainPicture,
		"moveset":        c.Moveset,
		"evolutionChain": c.EvolutionChain,
	}
}

func (c *Creature) Identity() (string, time.Time) { return c.ID, c.CreatedAt }

func (c *Creature) SetIdentity(id string, createdAt time.Time) {
	c.ID = id
	c.CreatedAt = createdAt
}
