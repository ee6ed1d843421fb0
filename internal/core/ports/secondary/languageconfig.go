package secondary

import (
	"context"

	"gitlab.com/algoforge.net/internal/domain"
)

type LanguageConfigRepository interface {
	// GetLanguageConfig retrieves execution limits for a language, falling
	// back to defaults when no row exists
	GetLanguageConfig(ctx context.Context, language string) (*domain.LanguageConfig, error)

	// GetActiveLanguages retrieves the names of languages open for submission
	GetActiveLanguages(ctx context.Context) ([]string, error)
}
