//go:build integration

package postgresql_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
)

const testCompanyID = "0193a5b0-0000-7000-8000-000000000001"

// TestDatabaseSetup owns a throwaway Postgres container with the schema applied.
type TestDatabaseSetup struct {
	DB        *database.DB
	container testcontainers.Container
}

// NewTestDatabase starts postgres:16-alpine and runs the embedded migrations.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("payroll_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &TestDatabaseSetup{DB: db, container: container}, nil
}

// TruncateAllTables empties every table between tests.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"payroll_run_entries",
		"payroll_records",
		"payroll_runs",
		"attendances",
		"employees",
	}
	for _, table := range tables {
		if _, err := t.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

func (t *TestDatabaseSetup) Close(ctx context.Context) {
	t.DB.Close()
	_ = t.container.Terminate(ctx)
}

// seedEmployee inserts an employee row and returns its id.
func seedEmployee(t *testing.T, db *database.DB, code, employmentType, salaryType string, base, hourly *decimal.Decimal) string {
	t.Helper()
	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO employees (company_id, employee_code, full_name, employment_type, salary_type, base_salary, hourly_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, testCompanyID, code, "Employee "+code, employmentType, salaryType, base, hourly).Scan(&id)
	if err != nil {
		t.Fatalf("seed employee %s: %v", code, err)
	}
	return id
}

// seedAttendance inserts a pending attendance row and returns its id.
func seedAttendance(t *testing.T, db *database.DB, employeeID, date string, hours string) string {
	t.Helper()
	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO attendances (employee_id, company_id, date, total_hours)
		VALUES ($1, $2, $3::date, $4)
		RETURNING id
	`, employeeID, testCompanyID, date, decimal.RequireFromString(hours)).Scan(&id)
	if err != nil {
		t.Fatalf("seed attendance %s: %v", date, err)
	}
	return id
}
