package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/learning-api/internal/domain/repository"
	apperrors "github.com/yourusername/learning-api/internal/pkg/errors"
)

// AnalyticsCache кэширует готовую аналитику студента в redis на короткое время.
// Ошибки кэша не прерывают запрос: при сбое данные просто считаются заново.
type AnalyticsCache struct {
	cache repository.CacheRepository
	ttl   time.Duration
}

// NewAnalyticsCache создает кэш аналитики. При cache == nil или ttl <= 0 кэш выключен.
func NewAnalyticsCache(cache repository.CacheRepository, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{cache: cache, ttl: ttl}
}

func courseAnalyticsKey(userID, courseID uint) string {
	return fmt.Sprintf("analytics:user:%d:course:%d", userID, courseID)
}

func overallAnalyticsKey(userID uint) string {
	return fmt.Sprintf("analytics:user:%d:overall", userID)
}

func (c *AnalyticsCache) enabled() bool {
	return c != nil && c.cache != nil && c.ttl > 0
}

// get читает значение; false означает промах
func (c *AnalyticsCache) get(key string, dest interface{}) bool {
	if !c.enabled() {
		return false
	}
	if err := c.cache.GetJSON(key, dest); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[AnalyticsCache] get %s failed: %v", key, err)
		}
		return false
	}
	return true
}

func (c *AnalyticsCache) set(key string, value interface{}) {
	if !c.enabled() {
		return
	}
	if err := c.cache.SetJSON(key, value, c.ttl); err != nil {
		log.Printf("[AnalyticsCache] set %s failed: %v", key, err)
	}
}

// Invalidate сбрасывает аналитику студента по курсу и общую аналитику
func (c *AnalyticsCache) Invalidate(userID, courseID uint) {
	if !c.enabled() {
		return
	}
	if err := c.cache.Delete(courseAnalyticsKey(userID, courseID), overallAnalyticsKey(userID)); err != nil {
		log.Printf("[AnalyticsCache] invalidate user #%d course #%d failed: %v", userID, courseID, err)
	}
}
