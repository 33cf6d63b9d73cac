package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/cache"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/database"
)

const (
	CacheKeyContentTotal = "statistics:content:total"
	CacheKeyUsersTotal   = "statistics:users:total"
	CacheKeyViewsDaily   = "statistics:views:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration      = 30 * time.Minute
)

// Data holds the headline numbers for the landing page.
type Data struct {
	TotalContent int
	TotalUsers   int
	TodayViews   int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if time.Since(lastCacheUpdate) > cacheUpdateInterval {
		lastCacheUpdate = time.Now()
		return true
	}
	return false
}

// GetStatistics returns cached counters, refreshing from the database when
// they are stale or missing.
func GetStatistics() Data {
	if ShouldUpdateCache() {
		refresh()
	}

	return Data{
		TotalContent: getCachedInt(CacheKeyContentTotal),
		TotalUsers:   getCachedInt(CacheKeyUsersTotal),
		TodayViews:   getCachedInt(todayViewsKey()),
	}
}

// AddView bumps today's view counter. Missing cache is a soft failure.
func AddView() {
	if err := cache.Incr(todayViewsKey()); err != nil {
		log.Printf("statistics: view increment failed: %v", err)
	}
}

func todayViewsKey() string {
	return fmt.Sprintf(CacheKeyViewsDaily, time.Now().Format("2006-01-02"))
}

func refresh() {
	db := database.GetDB()
	if db == nil {
		return
	}

	var contentCount, userCount int64
	db.Model(&models.Content{}).Count(&contentCount)
	db.Model(&models.User{}).Count(&userCount)

	if err := cache.Set(CacheKeyContentTotal, strconv.FormatInt(contentCount, 10), CacheExpiration); err != nil {
		log.Printf("statistics: cache update failed: %v", err)
	}
	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(userCount, 10), CacheExpiration); err != nil {
		log.Printf("statistics: cache update failed: %v", err)
	}
}

func getCachedInt(key string) int {
	val, err := cache.GetInt(key)
	if err != nil {
		return 0
	}
	return val
}
