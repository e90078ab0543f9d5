package repositories

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type CacheEntries struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCacheEntriesRepository(db *gorm.DB) *CacheEntries {
	return &CacheEntries{db: db, now: time.Now}
}

func (repo *CacheEntries) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := entities.DashboardCache{
		CacheKey:  key,
		CacheData: datatypes.JSON(data),
		ExpiresAt: repo.now().UTC().Add(ttl),
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cache_data", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	return errors.Wrap(err, "save cache entry")
}

// Load returns nil when the key is missing or expired.
func (repo *CacheEntries) Load(ctx context.Context, key string) ([]byte, error) {
	entry := &entities.DashboardCache{}
	err := repo.db.WithContext(ctx).
		Where("cache_key = ? AND "+repo.expiresAfter(), key, repo.now().UTC()).
		First(entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "load cache entry")
	}
	return entry.CacheData, nil
}

func (repo *CacheEntries) RemoveExpired(ctx context.Context, now time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.DashboardCache{}, "NOT "+repo.expiresAfter(), now.UTC())
	return res.RowsAffected, errors.Wrap(res.Error, "remove expired cache entries")
}

func (repo *CacheEntries) expiresAfter() string {
	return instantOf(repo.db, "expires_at") + " > " + instantOf(repo.db, "?")
}
