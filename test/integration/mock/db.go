package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is the shared in-memory SQLite database of the integration suite.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string
}

// NewDb opens the database and migrates models, keyed by table name. The connection is
// created once per test binary; later calls return the same instance.
func NewDb(schema string, models map[string]any) *Db {
	dbOnce.Do(func() {
		db = open(schema, models)
	})
	return db
}

func open(schema string, models map[string]any) *Db {
	// A single connection keeps every query on the same in-memory database.
	dbSQL, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", schema))
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	tables := make([]string, 0, len(models))
	list := make([]any, 0, len(models))
	for table, model := range models {
		tables = append(tables, table)
		list = append(list, model)
	}
	sort.Strings(tables)

	if err := dbConn.AutoMigrate(list...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDb := &Db{DbConn: dbConn, models: models, tables: tables}
	if err := newDb.checkTables(); err != nil {
		panic(err)
	}
	return newDb
}

// ClearDB deletes every row of every migrated table.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for _, table := range d.tables {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
		return nil
	})
}

func (d *Db) checkTables() error {
	for table, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table %s was not created", table)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	model, ok := d.models[table]
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}
	var count int64
	err := d.DbConn.Model(model).Count(&count).Error
	return count, err
}
