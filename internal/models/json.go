package models

import (
	"context"
	"database/sql/driver"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// JSON is a raw JSON column. It behaves like datatypes.JSON except that the
// column is declared TEXT on sqlite: a JSON column there has numeric
// affinity and turns scalar documents like 3 into integers.
type JSON datatypes.JSON

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	return datatypes.JSON(j).Value()
}

// Scan implements sql.Scanner. Numbers read back from stores written with a
// numeric column are accepted as their JSON text.
func (j *JSON) Scan(value any) error {
	switch v := value.(type) {
	case int64:
		*j = JSON(strconv.FormatInt(v, 10))
		return nil
	case float64:
		*j = JSON(strconv.FormatFloat(v, 'g', -1, 64))
		return nil
	case bool:
		*j = JSON(strconv.FormatBool(v))
		return nil
	}
	return (*datatypes.JSON)(j).Scan(value)
}

func (j JSON) MarshalJSON() ([]byte, error) {
	return datatypes.JSON(j).MarshalJSON()
}

func (j *JSON) UnmarshalJSON(b []byte) error {
	return (*datatypes.JSON)(j).UnmarshalJSON(b)
}

func (j JSON) String() string { return string(j) }

func (JSON) GormDataType() string { return "json" }

func (j JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "TEXT"
	}
	return datatypes.JSON(j).GormDBDataType(db, field)
}

func (j JSON) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	return datatypes.JSON(j).GormValue(ctx, db)
}
