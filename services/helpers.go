package services

import (
	"strings"

	"gorm.io/gorm"
)

// ensureUnique fails with a ValidationError when another row of model
// already holds value in column. ignoreID excludes the row being edited.
func ensureUnique(db *gorm.DB, model any, column string, value any, ignoreID uint, scopes ...func(*gorm.DB) *gorm.DB) error {
	var count int64
	q := db.Model(model).Scopes(scopes...).Where(column+" = ?", value)
	if ignoreID != 0 {
		q = q.Where("id <> ?", ignoreID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return NewValidationError(column, "has already been taken")
	}
	return nil
}

func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
