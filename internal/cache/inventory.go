package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	guideKeyPrefix = "guide:%d"
	guideListKey   = "guides:list"
)

const (
	// GuideTTL bounds staleness of an anonymously cached guide detail.
	GuideTTL = 10 * time.Minute
	// ListTTL is short: the list carries vote and comment aggregates.
	ListTTL = 1 * time.Minute
)

// GuideKey is the cache key for an anonymous guide detail (no voter flag).
func GuideKey(guideID uint) string {
	return fmt.Sprintf(guideKeyPrefix, guideID)
}

// GuideListKey is the cache key for the guide summary list.
func GuideListKey() string {
	return guideListKey
}

// Invalidate deletes a single key, best-effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateGuide drops the cached detail and the summary list for a guide.
// Votes and comments change both views.
func InvalidateGuide(ctx context.Context, guideID uint) {
	Invalidate(ctx, GuideKey(guideID))
	Invalidate(ctx, guideListKey)
}

// InvalidateGuideList drops only the summary list.
func InvalidateGuideList(ctx context.Context) {
	Invalidate(ctx, guideListKey)
}
