package services

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type CacheCleanupRepository interface {
	RemoveExpired(ctx context.Context, now time.Time) (int64, error)
}

// CacheCleaner periodically drops expired rows of the database report cache.
type CacheCleaner struct {
	entries CacheCleanupRepository
	cron    *cron.Cron
}

func NewCacheCleaner(entries CacheCleanupRepository, schedule string) (*CacheCleaner, error) {
	if schedule == "" {
		return nil, errors.New("cleanup schedule must not be empty")
	}

	cc := &CacheCleaner{
		entries: entries,
		cron:    cron.New(),
	}

	_, err := cc.cron.AddFunc(schedule, cc.removeExpired)
	if err != nil {
		return nil, errors.Wrap(err, "invalid cleanup schedule")
	}

	cc.cron.Start()
	log.Infof("cache cleaner started, schedule: %s", schedule)
	return cc, nil
}

func (cc *CacheCleaner) Stop() {
	<-cc.cron.Stop().Done()
}

func (cc *CacheCleaner) removeExpired() {
	rowsAffected, err := cc.entries.RemoveExpired(context.Background(), time.Now())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("Failed to remove expired cache entries: %v", err)
	} else {
		log.Debugf("Expired cache entries were removed at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
