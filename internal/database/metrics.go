package database

import (
	"errors"
	"time"

	"github.com/classhub/backend/internal/metrics"
	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start"

// registerMetricsCallbacks hooks into gorm's callback chain so every
// statement feeds the database query counter and latency histogram.
func registerMetricsCallbacks(db *gorm.DB) {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}

	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}

		table := tx.Statement.Table
		if table == "" {
			table = "unknown"
		}
		status := "success"
		if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			status = "error"
		}

		m := metrics.Get()
		m.DatabaseQueriesTotal.WithLabelValues(table, status).Inc()
		m.DatabaseQueryDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	}

	db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before)
	db.Callback().Create().After("gorm:create").Register("metrics:after_create", after)
	db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before)
	db.Callback().Query().After("gorm:query").Register("metrics:after_query", after)
	db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before)
	db.Callback().Update().After("gorm:update").Register("metrics:after_update", after)
	db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before)
	db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after)
	db.Callback().Row().Before("gorm:row").Register("metrics:before_row", before)
	db.Callback().Row().After("gorm:row").Register("metrics:after_row", after)
	db.Callback().Raw().Before("gorm:raw").Register("metrics:before_raw", before)
	db.Callback().Raw().After("gorm:raw").Register("metrics:after_raw", after)
}
