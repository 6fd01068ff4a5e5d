package repository

import (
	"strings"
	"time"

	"github.com/sangkips/billing-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies offset and limit from p, clamping it first
func Paginate(p *pagination.Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db
		}
		p.Validate()
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// Search matches term against any of columns. SQLite LIKE is case-insensitive for ASCII.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = col + " LIKE ?"
			args[i] = "%" + term + "%"
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// DateRange keeps rows whose column is in [from, to). Either bound may be nil.
func DateRange(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" < ?", *to)
		}
		return db
	}
}

// sortColumn whitelists a client supplied sort key
func sortColumn(requested string, allowed map[string]string, fallback string) string {
	if col, ok := allowed[requested]; ok {
		return col
	}
	return fallback
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
