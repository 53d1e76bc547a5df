package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sngm3741/team-mood-services/api/internal/public/domain"
)

// ReportCache は集計済みレポートを Redis に保持するキャッシュ実装。
// ミスや Redis 障害で集計が壊れないよう、利用側はベストエフォートで扱う。
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache は Redis クライアントと TTL を束縛したキャッシュを構築する。
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Get はキャッシュ済みレポートを取得する。未登録なら nil を返す。
func (c *ReportCache) Get(ctx context.Context, key string) (*domain.QuantityReport, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report domain.QuantityReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Set はレポートを TTL 付きで保存する。
func (c *ReportCache) Set(ctx context.Context, key string, report domain.QuantityReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// InvalidateCompany は指定会社のレポートキーをまとめて破棄する。
// 投稿のたびに呼ばれるため、SCAN でブロッキングを避ける。
func (c *ReportCache) InvalidateCompany(ctx context.Context, companyID string) error {
	pattern := fmt.Sprintf("reports:quantity:%s:*", companyID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
