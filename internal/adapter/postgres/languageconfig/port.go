package languageconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
)

var _ secondary.LanguageConfigRepository = (*LanguageConfigRepository)(nil)

// LanguageConfigRepository implements the LanguageConfigRepository interface with PostgreSQL
type LanguageConfigRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewLanguageConfigRepository creates a new PostgreSQL language config repository
func NewLanguageConfigRepository(db *sqlx.DB, logger primary.Logger) *LanguageConfigRepository {
	return &LanguageConfigRepository{
		db:     db,
		logger: logger,
	}
}

// GetLanguageConfig retrieves execution limits for a specific language
func (r *LanguageConfigRepository) GetLanguageConfig(ctx context.Context, language string) (*domain.LanguageConfig, error) {
	query := `
		SELECT
			language, description, cpu_time_limit_sec, memory_limit_kb,
			active, created_at, updated_at
		FROM language_config
		WHERE language = $1
	`

	var config domain.LanguageConfig
	err := r.db.QueryRowContext(ctx, query, language).Scan(
		&config.Language,
		&config.Description,
		&config.CPUTimeLimitSec,
		&config.MemoryLimitKB,
		&config.Active,
		&config.CreatedAt,
		&config.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// If not found, return default limits
			return r.createDefaultConfig(language), nil
		}
		r.logger.Error("Failed to get language config", "language", language, "error", err)
		return nil, fmt.Errorf("failed to get language config: %w", err)
	}

	return &config, nil
}

// GetActiveLanguages retrieves the names of languages open for submission
func (r *LanguageConfigRepository) GetActiveLanguages(ctx context.Context) ([]string, error) {
	query := `
		SELECT language
		FROM language_config
		WHERE active = true
		ORDER BY language
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to get active languages", "error", err)
		return nil, fmt.Errorf("failed to get active languages: %w", err)
	}
	defer rows.Close()

	languages := make([]string, 0)
	for rows.Next() {
		var language string
		if err := rows.Scan(&language); err != nil {
			r.logger.Error("Failed to scan language row", "error", err)
			return nil, fmt.Errorf("failed to scan language row: %w", err)
		}
		languages = append(languages, language)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating language rows", "error", err)
		return nil, fmt.Errorf("error iterating language rows: %w", err)
	}

	return languages, nil
}

// createDefaultConfig builds a default configuration for a language with no
// stored row
func (r *LanguageConfigRepository) createDefaultConfig(language string) *domain.LanguageConfig {
	now := time.Now()
	return &domain.LanguageConfig{
		Language:        language,
		Description:     fmt.Sprintf("Default configuration for %s", language),
		CPUTimeLimitSec: 2,
		MemoryLimitKB:   128 * 1024,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
