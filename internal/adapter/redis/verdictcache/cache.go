package verdictcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
)

const (
	verdictKeyPrefix  = "verdict:"
	solvedSetPrefix   = "solved:"
	verdictExpiration = 15 * time.Minute
)

var _ secondary.VerdictCache = (*VerdictCache)(nil)

// VerdictCache implements the VerdictCache interface with Redis
type VerdictCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewVerdictCache creates a new Redis verdict cache
func NewVerdictCache(redisClient *redis.Client, logger primary.Logger) *VerdictCache {
	return &VerdictCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PutVerdict caches a terminal verdict with expiration
func (c *VerdictCache) PutVerdict(ctx context.Context, submissionID uuid.UUID, verdict *domain.SubmissionVerdict) error {
	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		c.logger.Error("Failed to marshal verdict", "error", err)
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	key := fmt.Sprintf("%s%s", verdictKeyPrefix, submissionID)
	if err := c.redisClient.Set(ctx, key, verdictJSON, verdictExpiration).Err(); err != nil {
		c.logger.Error("Failed to cache verdict", "error", err)
		return fmt.Errorf("failed to cache verdict: %w", err)
	}

	return nil
}

// GetVerdict retrieves a cached verdict, nil on a cache miss
func (c *VerdictCache) GetVerdict(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionVerdict, error) {
	key := fmt.Sprintf("%s%s", verdictKeyPrefix, submissionID)
	verdictJSON, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		c.logger.Error("Failed to get cached verdict", "error", err)
		return nil, fmt.Errorf("failed to get cached verdict: %w", err)
	}

	var verdict domain.SubmissionVerdict
	if err := json.Unmarshal(verdictJSON, &verdict); err != nil {
		c.logger.Error("Failed to unmarshal cached verdict", "error", err)
		return nil, fmt.Errorf("failed to unmarshal cached verdict: %w", err)
	}

	return &verdict, nil
}

// MarkSolved adds the problem to the user's cached solved set
func (c *VerdictCache) MarkSolved(ctx context.Context, userID string, problemID uuid.UUID) error {
	key := fmt.Sprintf("%s%s", solvedSetPrefix, userID)
	if err := c.redisClient.SAdd(ctx, key, problemID.String()).Err(); err != nil {
		c.logger.Error("Failed to cache solved state", "error", err)
		return fmt.Errorf("failed to cache solved state: %w", err)
	}

	return nil
}

// IsSolvedCached reports whether the problem is in the user's cached solved
// set. A miss only means the storage layer must be consulted.
func (c *VerdictCache) IsSolvedCached(ctx context.Context, userID string, problemID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("%s%s", solvedSetPrefix, userID)
	member, err := c.redisClient.SIsMember(ctx, key, problemID.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cached solved state: %w", err)
	}

	return member, nil
}
