package store

import (
	"time"

	"gorm.io/datatypes"
)

// EncounterMap is one saved revision of a named grid.
type EncounterMap struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name" gorm:"size:128;not null;uniqueIndex:idx_map_revision"`
	Revision  int       `json:"revision" gorm:"not null;uniqueIndex:idx_map_revision"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	// Grid holds the grid wire document.
	Grid datatypes.JSON `json:"grid"`
}

// TableName overrides the pluralized default.
func (*EncounterMap) TableName() string {
	return "encounter_maps"
}

// Summary describes a stored map name.
type Summary struct {
	Name      string `json:"name"`
	Latest    int    `json:"latest"`
	Revisions int    `json:"revisions"`
}
