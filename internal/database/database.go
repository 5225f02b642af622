package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver

	"restaurant_pos_backend/pkg/utils"
)

var db *sql.DB

// InitDB opens the connection pool and verifies it with a ping. When a schema
// path is given the schema script is applied, which is how fresh environments
// bootstrap their tables.
func InitDB(host, port, user, password, dbname, sslmode, dbSchemaPath string) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	utils.LogInfo("Connected to the database", map[string]interface{}{"host": host, "dbname": dbname})

	if dbSchemaPath != "" {
		if err := applySchema(db, dbSchemaPath); err != nil {
			return err
		}
	}
	return nil
}

// applySchema reads and executes the db_schema.sql file.
func applySchema(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err = db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied", map[string]interface{}{"path": schemaPath})
	return nil
}

// GetDB returns the database connection pool.
func GetDB() *sql.DB {
	return db
}
