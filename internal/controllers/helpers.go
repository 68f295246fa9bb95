package controllers

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"fleet_manager/internal/config"
)

// isDuplicateErr reports whether err is a unique-constraint violation. The
// pre-checks in the create/update paths are best-effort; the store constraint
// is the source of truth, so its failures must map to the same 400 outcome.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}

// countWhere counts rows of model matching the condition.
func countWhere(model interface{}, query string, args ...interface{}) (int64, error) {
	var count int64
	err := config.DB.Model(model).Where(query, args...).Count(&count).Error
	return count, err
}

// parseDate parses a YYYY-MM-DD value into a midnight-UTC time.
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, value, time.UTC)
}
