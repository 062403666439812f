package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
}

const startTimeKey = "metrics_start_time"

// RegisterMetricsCallbacks registers GORM callbacks that time every
// query/create/update/delete and report it to the recorder
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	before := func(db *gorm.DB) {
		db.InstanceSet(startTimeKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			start, ok := db.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), db.Error)
		}
	}

	_ = db.Callback().Query().Before("gorm:query").Register("metrics:select_before", before)
	_ = db.Callback().Query().After("gorm:query").Register("metrics:select_after", after("select"))
	_ = db.Callback().Create().Before("gorm:create").Register("metrics:insert_before", before)
	_ = db.Callback().Create().After("gorm:create").Register("metrics:insert_after", after("insert"))
	_ = db.Callback().Update().Before("gorm:update").Register("metrics:update_before", before)
	_ = db.Callback().Update().After("gorm:update").Register("metrics:update_after", after("update"))
	_ = db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", before)
	_ = db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", after("delete"))
}
