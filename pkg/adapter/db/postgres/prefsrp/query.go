package prefsrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/job-alerts/pkg/adapter/db/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gPreference struct {
	Name  string `gorm:"primaryKey"`
	Value string
}

func (gp *gPreference) TableName() string {
	return "preferences"
}

// Get reads the value of the name preference. The second return value
// reports whether the preference row was present. A single-row SELECT
// is atomic with respect to the single-row upsert of Set, hence,
// readers observe either the old or the new value, never a torn one.
func Get[Q postgres.Queryer](ctx context.Context, q Q, name string) (string, bool, error) {
	gdb := q.GORM(ctx)
	var gp gPreference
	err := gdb.Take(&gp, "name=?", name).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("query: %w", err)
	}
	return gp.Value, true, nil
}

// Set upserts the name preference with the given value.
func Set[Q postgres.Queryer](ctx context.Context, q Q, name, value string) error {
	gdb := q.GORM(ctx)
	err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&gPreference{Name: name, Value: value}).Error
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Schema contains the DDL statement of the preferences table, so the
// db init command (and the integration tests) can create it.
const Schema = `CREATE TABLE IF NOT EXISTS preferences (
	name VARCHAR(100) PRIMARY KEY,
	value TEXT NOT NULL
);`
