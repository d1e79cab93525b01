package persistence

import (
	"fmt"
	"strings"

	"github.com/carpentry/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// searchScope matches the search term case-insensitively against columns.
// LOWER/LIKE keeps the query portable between sqlite and postgres.
func searchScope(search string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.ToLower(strings.TrimSpace(search))
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + escapeLike(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col)
			args[i] = like
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// paginate applies limit and offset when a page size is set
func paginate(filter shared.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PageSize > 0 {
			db = db.Limit(filter.PageSize).Offset(filter.Offset())
		}
		return db
	}
}

// equalFilter applies Filters[key] as an equality on column when present
func equalFilter(filter shared.Filter, key, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		v, ok := filter.Filters[key]
		if !ok {
			return db
		}
		if s, isString := v.(string); isString && s == "" {
			return db
		}
		return db.Where(column+" = ?", v)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
