package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	// Check if migrations directory exists
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	// Expected migration files
	expectedMigrations := []string{
		"00001_create_users_table.sql",
		"00002_create_categories_table.sql",
		"00003_create_products_table.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		// Check for goose Up directive
		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}

		// Check for goose Down directive
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}

		// Check for StatementBegin/End
		if !strings.Contains(contentStr, "-- +goose StatementBegin") {
			t.Errorf("Migration file %s missing '-- +goose StatementBegin' directive", file.Name())
		}

		if !strings.Contains(contentStr, "-- +goose StatementEnd") {
			t.Errorf("Migration file %s missing '-- +goose StatementEnd' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedTables := map[string]string{
		"users":      "00001_create_users_table.sql",
		"categories": "00002_create_categories_table.sql",
		"products":   "00003_create_products_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		// Check if migration creates the table
		createTableStmt := "CREATE TABLE IF NOT EXISTS " + tableName
		if !strings.Contains(contentStr, createTableStmt) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		// Check if migration has drop table in down section
		dropTableStmt := "DROP TABLE IF EXISTS " + tableName
		if !strings.Contains(contentStr, dropTableStmt) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestUsersTableHasRequiredColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00001_create_users_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read users migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id BIGSERIAL PRIMARY KEY",
		"username VARCHAR(50)",
		"email VARCHAR(100)",
		"password_hash VARCHAR",
		"role VARCHAR",
		"created_at TIMESTAMPTZ",
		"last_login_at TIMESTAMPTZ",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Users table missing required column definition: %s", column)
		}
	}

	// Usernames and emails must be unique
	if !strings.Contains(contentStr, "username VARCHAR(50) NOT NULL UNIQUE") {
		t.Error("Users table missing unique constraint on username")
	}
	if !strings.Contains(contentStr, "email VARCHAR(100) NOT NULL UNIQUE") {
		t.Error("Users table missing unique constraint on email")
	}
}

func TestProductsTableHasRequiredColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00003_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id BIGSERIAL PRIMARY KEY",
		"name VARCHAR(200)",
		"price NUMERIC(12, 2)",
		"stock INTEGER",
		"category_id BIGINT",
		"created_at TIMESTAMPTZ",
		"updated_at TIMESTAMPTZ",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Products table missing required column definition: %s", column)
		}
	}

	// Check for foreign key constraint and value guards
	if !strings.Contains(contentStr, "REFERENCES categories (id)") {
		t.Error("Products table missing foreign key constraint to categories")
	}
	if !strings.Contains(contentStr, "CHECK (price >= 0)") {
		t.Error("Products table missing non-negative price check")
	}
	if !strings.Contains(contentStr, "CHECK (stock >= 0)") {
		t.Error("Products table missing non-negative stock check")
	}
}

func TestCategoriesTableHasCaseInsensitiveUniqueName(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00002_create_categories_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read categories migration: %v", err)
	}

	contentStr := string(content)

	// Name uniqueness is enforced case-insensitively
	if !strings.Contains(contentStr, "UNIQUE INDEX") || !strings.Contains(contentStr, "LOWER(name)") {
		t.Error("Categories table missing case-insensitive unique index on name")
	}

	if !strings.Contains(contentStr, "is_active BOOLEAN NOT NULL DEFAULT TRUE") {
		t.Error("Categories table missing is_active column defaulting to true")
	}
}
