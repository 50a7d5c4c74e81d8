// internal/storage/postgres.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"knowyourcompany/internal/common/database"
	"knowyourcompany/internal/models"
)

// PostgresStore implements the durable insight store on PostgreSQL.
// One row per canonical key, overwritten on every recompute; freshness
// is the orchestrator's concern, not the store's.
type PostgresStore struct {
	client *database.PostgresClient
}

func NewPostgresStore(client *database.PostgresClient) *PostgresStore {
	return &PostgresStore{client: client}
}

// Migrate creates the companies table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.client.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS companies (
			canonical_name     TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			website            TEXT NOT NULL DEFAULT '',
			authenticity_score DOUBLE PRECISION NOT NULL,
			risk_tier          TEXT NOT NULL,
			company_type       TEXT NOT NULL DEFAULT '',
			flags              JSONB NOT NULL DEFAULT '[]',
			signals            JSONB NOT NULL DEFAULT '[]',
			computed_at        TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate companies table: %w", err)
	}
	return nil
}

const selectInsightQuery = `
	SELECT name, website, authenticity_score, risk_tier, company_type, flags, signals, computed_at
	FROM companies WHERE canonical_name = $1`

func (s *PostgresStore) Get(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	row := s.client.QueryRow(ctx, selectInsightQuery, canonicalKey)

	ins := models.Insight{CanonicalKey: canonicalKey}
	var flags, signals []byte
	err := row.Scan(
		&ins.Name,
		&ins.Website,
		&ins.AuthenticityScore,
		&ins.RiskTier,
		&ins.CompanyType,
		&flags,
		&signals,
		&ins.ComputedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select company: %w", err)
	}

	if err := json.Unmarshal(flags, &ins.Flags); err != nil {
		return nil, fmt.Errorf("decode flags: %w", err)
	}
	if err := json.Unmarshal(signals, &ins.Signals); err != nil {
		return nil, fmt.Errorf("decode signals: %w", err)
	}
	return &ins, nil
}

const upsertInsightQuery = `
	INSERT INTO companies (canonical_name, name, website, authenticity_score, risk_tier, company_type, flags, signals, computed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (canonical_name) DO UPDATE SET
		name = EXCLUDED.name,
		website = EXCLUDED.website,
		authenticity_score = EXCLUDED.authenticity_score,
		risk_tier = EXCLUDED.risk_tier,
		company_type = EXCLUDED.company_type,
		flags = EXCLUDED.flags,
		signals = EXCLUDED.signals,
		computed_at = EXCLUDED.computed_at`

func (s *PostgresStore) Put(ctx context.Context, insight *models.Insight) error {
	flags, err := json.Marshal(insight.Flags)
	if err != nil {
		return fmt.Errorf("encode flags: %w", err)
	}
	signals, err := json.Marshal(insight.Signals)
	if err != nil {
		return fmt.Errorf("encode signals: %w", err)
	}

	_, err = s.client.Exec(ctx, upsertInsightQuery,
		insight.CanonicalKey,
		insight.Name,
		insight.Website,
		insight.AuthenticityScore,
		string(insight.RiskTier),
		string(insight.CompanyType),
		flags,
		signals,
		insight.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, canonicalKey string) error {
	_, err := s.client.Exec(ctx, `DELETE FROM companies WHERE canonical_name = $1`, canonicalKey)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
