package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pundit-watch/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists crawled articles keyed by their content hash. The crawl
// pipeline itself holds no cross-run state; callers that want dedup or audit
// across runs layer this store on top using the same hash key.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func itemKey(hash string) string {
	return fmt.Sprintf("articles:item:%s", hash)
}

func seenKey(hash string) string {
	return fmt.Sprintf("articles:seen:%s", hash)
}

const recentZKey = "articles:recent"

// SaveArticle stores the article body and marks its hash as seen. The body
// expires after a week; the seen marker lives longer so cross-run dedup
// outlasts the stored payload.
func (s *RedisStore) SaveArticle(ctx context.Context, a model.Article) error {
	hash := a.ContentHash()
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, itemKey(hash), b, 7*24*time.Hour).Err(); err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, seenKey(hash), "1", 30*24*time.Hour).Err(); err != nil {
		return err
	}
	z := &redis.Z{Score: float64(a.PublishedAt.Unix()), Member: hash}
	return s.rdb.ZAdd(ctx, recentZKey, *z).Err()
}

// Seen reports whether an article with this hash was stored by an earlier
// run.
func (s *RedisStore) Seen(ctx context.Context, hash string) (bool, error) {
	_, err := s.rdb.Get(ctx, seenKey(hash)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Recent returns up to n stored articles, newest publish time first. Hashes
// whose body has expired are skipped.
func (s *RedisStore) Recent(ctx context.Context, n int) ([]model.Article, error) {
	hashes, err := s.rdb.ZRevRange(ctx, recentZKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Article, 0, len(hashes))
	for _, h := range hashes {
		b, err := s.rdb.Get(ctx, itemKey(h)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var a model.Article
		if err := json.Unmarshal(b, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
