package mock

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/db"
)

var once sync.Once
var database *Db

// Db is the in-memory ledger store shared by every scenario.
type Db struct {
	Database *db.Database
	models   map[string]any
}

// NewDb opens and migrates the shared store on first use.
func NewDb(models map[string]any) *Db {
	once.Do(func() {
		database = open(models)
	})
	return database
}

func open(models map[string]any) *Db {
	conn, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    ":memory:",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, model := range models {
		modelList = append(modelList, model)
	}
	if err := conn.AutoMigrate(modelList...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{
		Database: conn,
		models:   models,
	}
}

// Conn returns the gorm handle of the store.
func (d *Db) Conn() *gorm.DB {
	return d.Database.DB()
}

// ClearDB removes every row, soft deleted ones included, and restarts the id sequences.
func (d *Db) ClearDB() error {
	for table, model := range d.models {
		err := d.Conn().Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}

		err = d.Conn().Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
