package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/katalvlaran/tacgrid/grid"
)

// ErrMapNotFound is returned when no revision exists for a name.
var ErrMapNotFound = errors.New("store: map not found")

// Store keeps revisioned grid snapshots in SQLite.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the SQLite file at path and migrates the schema.
// An empty path opens a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if path == "" {
		// every pooled connection to :memory: would see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&EncounterMap{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if path == "" {
		log.Debug().Msg("Using in-memory map store")
	} else {
		log.Debug().Str("path", path).Msg("Using map store")
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save stores g as the next revision of name and returns that revision.
// Revisions start at 1.
func (s *Store) Save(ctx context.Context, name string, g *grid.Grid) (int, error) {
	if name == "" {
		return 0, errors.New("store: empty map name")
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, fmt.Errorf("encoding grid: %w", err)
	}

	var revision int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest int
		if err := tx.Model(&EncounterMap{}).
			Where("name = ?", name).
			Select("COALESCE(MAX(revision), 0)").
			Scan(&latest).Error; err != nil {
			return err
		}

		row := EncounterMap{
			Name:     name,
			Revision: latest + 1,
			Width:    g.Width(),
			Height:   g.Height(),
			Grid:     datatypes.JSON(doc),
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		revision = row.Revision
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("saving map %q: %w", name, err)
	}

	s.log.Info().Str("map", name).Int("revision", revision).Msg("Saved map")
	return revision, nil
}

// Load returns the latest revision of name.
func (s *Store) Load(ctx context.Context, name string) (*grid.Grid, int, error) {
	var row EncounterMap
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Order("revision DESC").
		First(&row).Error
	if err != nil {
		return nil, 0, s.notFound(name, err)
	}

	g, err := decode(row)
	if err != nil {
		return nil, 0, err
	}
	return g, row.Revision, nil
}

// LoadRevision returns one specific revision of name.
func (s *Store) LoadRevision(ctx context.Context, name string, revision int) (*grid.Grid, error) {
	var row EncounterMap
	err := s.db.WithContext(ctx).
		Where("name = ? AND revision = ?", name, revision).
		First(&row).Error
	if err != nil {
		return nil, s.notFound(name, err)
	}

	return decode(row)
}

// List summarizes every stored name, sorted by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := s.db.WithContext(ctx).
		Model(&EncounterMap{}).
		Select("name, MAX(revision) AS latest, COUNT(*) AS revisions").
		Group("name").
		Order("name").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}

	return out, nil
}

func (s *Store) notFound(name string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %q", ErrMapNotFound, name)
	}
	return fmt.Errorf("loading map %q: %w", name, err)
}

func decode(row EncounterMap) (*grid.Grid, error) {
	g := new(grid.Grid)
	if err := json.Unmarshal(row.Grid, g); err != nil {
		return nil, fmt.Errorf("decoding map %q revision %d: %w", row.Name, row.Revision, err)
	}
	return g, nil
}
