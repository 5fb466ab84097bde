package database

import (
	"context"
	"fmt"

	"patient-record-manager/internal/domain/entity"

	"gorm.io/gorm"
)

const patientColumnsDDL = `
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    phone TEXT NOT NULL,
    date_of_birth TEXT NOT NULL,
    address TEXT NOT NULL,
    registration_date TEXT NOT NULL,
    national_id TEXT,
    gender TEXT NOT NULL,
    email TEXT,
    emergency_contact TEXT,
    blood_type TEXT,
    medical_history TEXT,
    insurance_provider TEXT,
    insurance_number TEXT,
    language_preference TEXT,
    notes TEXT
  );`

var primaryKeyDDL = map[entity.Dialect]string{
	entity.DialectSQLite:   "id INTEGER PRIMARY KEY AUTOINCREMENT,",
	entity.DialectPostgres: "id SERIAL PRIMARY KEY,",
}

// CreatePatientsTableSQL returns the guarded DDL for the dialect.
func CreatePatientsTableSQL(dialect entity.Dialect) string {
	return "CREATE TABLE IF NOT EXISTS patients (\n    " + primaryKeyDDL[dialect] + patientColumnsDDL
}

// EnsureSchema creates the patients table when it does not exist yet.
// It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	ddl := CreatePatientsTableSQL(Dialect(db))
	if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
		return fmt.Errorf("failed to create patients table: %w", err)
	}
	return nil
}
