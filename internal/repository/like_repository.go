package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const likeKeyPrefix = "likes:"

// LikeRepository keeps per-image like counters in redis. INCR makes the
// increment atomic, so concurrent likes on one image cannot lose updates the
// way a read-modify-write against object metadata would.
type LikeRepository struct {
	client *redis.Client
}

func NewLikeRepository(client *redis.Client) *LikeRepository {
	return &LikeRepository{client: client}
}

// Seed initializes a counter that has never been touched, typically from a
// legacy likes value carried in object metadata. Existing counters win.
func (r *LikeRepository) Seed(ctx context.Context, imagePath string, likes int64) error {
	return r.client.SetNX(ctx, likeKeyPrefix+imagePath, likes, 0).Err()
}

// Increment adds one like and returns the new count.
func (r *LikeRepository) Increment(ctx context.Context, imagePath string) (int64, error) {
	n, err := r.client.Incr(ctx, likeKeyPrefix+imagePath).Result()
	if err != nil {
		return 0, fmt.Errorf("incr likes %s: %w", imagePath, err)
	}
	return n, nil
}

// Counts fetches the counters for a page of images in one round trip.
// Images with no counter are absent from the result.
func (r *LikeRepository) Counts(ctx context.Context, imagePaths []string) (map[string]int64, error) {
	if len(imagePaths) == 0 {
		return map[string]int64{}, nil
	}

	keys := make([]string, len(imagePaths))
	for i, path := range imagePaths {
		keys[i] = likeKeyPrefix + path
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget likes: %w", err)
	}

	counts := make(map[string]int64, len(imagePaths))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			counts[imagePaths[i]] = n
		}
	}
	return counts, nil
}
