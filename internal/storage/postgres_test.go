// internal/storage/postgres_test.go
package storage

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knowyourcompany/internal/common/database"
	"knowyourcompany/internal/models"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(&database.PostgresClient{DB: db}), mock
}

func TestPostgresStoreGet(t *testing.T) {
	store, mock := newMockStore(t)
	computedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"name", "website", "authenticity_score", "risk_tier", "company_type", "flags", "signals", "computed_at",
	}).AddRow(
		"Acme Corp", "https://acme.example", 72.5, "medium", "it_services",
		[]byte(`["no_glassdoor_presence"]`),
		[]byte(`[{"platform":"reddit","sourceUrl":"https://r/1","snippet":"legit"}]`),
		computedAt,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE canonical_name = $1")).
		WithArgs("acme corp").
		WillReturnRows(rows)

	got, err := store.Get(context.Background(), "acme corp")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "acme corp", got.CanonicalKey)
	assert.Equal(t, "Acme Corp", got.Name)
	assert.Equal(t, 72.5, got.AuthenticityScore)
	assert.Equal(t, models.RiskMedium, got.RiskTier)
	assert.Equal(t, models.TypeITServices, got.CompanyType)
	assert.Equal(t, []string{models.FlagNoGlassdoorPresence}, got.Flags)
	require.Len(t, got.Signals, 1)
	assert.Equal(t, models.PlatformReddit, got.Signals[0].Platform)
	assert.Equal(t, computedAt, got.ComputedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetMiss(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE canonical_name = $1")).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	got, err := store.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got, "no row means absent, not an error")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorePut(t *testing.T) {
	store, mock := newMockStore(t)
	computedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO companies")).
		WithArgs(
			"acme corp", "Acme Corp", "https://acme.example", 72.5, "medium", "it_services",
			[]byte(`["no_glassdoor_presence"]`),
			[]byte(`[]`),
			computedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Put(context.Background(), &models.Insight{
		Name:              "Acme Corp",
		CanonicalKey:      "acme corp",
		Website:           "https://acme.example",
		AuthenticityScore: 72.5,
		RiskTier:          models.RiskMedium,
		CompanyType:       models.TypeITServices,
		Flags:             []string{models.FlagNoGlassdoorPresence},
		Signals:           []models.Signal{},
		ComputedAt:        computedAt,
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDelete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM companies WHERE canonical_name = $1")).
		WithArgs("acme corp").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "acme corp"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreMigrate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS companies").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
