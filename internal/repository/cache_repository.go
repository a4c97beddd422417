package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devconnect-service/internal/models"

	redis_v9 "github.com/redis/go-redis/v9"
)

const profileCacheTTL = 15 * time.Minute

// ProfileCache is a read-through cache over profile documents. A nil
// *ProfileCache is valid and disables caching.
type ProfileCache struct {
	client *redis_v9.Client
}

func NewProfileCache(client *redis_v9.Client) *ProfileCache {
	if client == nil {
		return nil
	}
	return &ProfileCache{client: client}
}

func ownerKey(userID string) string  { return "profile:user:" + userID }
func handleKey(handle string) string { return "profile:handle:" + handle }

func (c *ProfileCache) GetByOwner(ctx context.Context, userID string) (*models.Profile, bool) {
	return c.get(ctx, ownerKey(userID))
}

func (c *ProfileCache) GetByHandle(ctx context.Context, handle string) (*models.Profile, bool) {
	return c.get(ctx, handleKey(handle))
}

func (c *ProfileCache) get(ctx context.Context, key string) (*models.Profile, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var profile models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

func (c *ProfileCache) Store(ctx context.Context, profile *models.Profile) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error caching profile: %w", err)
	}

	if err := c.client.Set(ctx, ownerKey(profile.UserID), raw, profileCacheTTL).Err(); err != nil {
		return fmt.Errorf("error caching profile: %w", err)
	}
	if profile.Handle != "" {
		if err := c.client.Set(ctx, handleKey(profile.Handle), raw, profileCacheTTL).Err(); err != nil {
			return fmt.Errorf("error caching profile: %w", err)
		}
	}
	return nil
}

// Invalidate drops the cached copies for the owner and handle. Called on every
// profile write so readers never see a stale merge.
func (c *ProfileCache) Invalidate(ctx context.Context, userID, handle string) error {
	if c == nil {
		return nil
	}

	keys := []string{ownerKey(userID)}
	if handle != "" {
		keys = append(keys, handleKey(handle))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("error invalidating profile cache: %w", err)
	}
	return nil
}
