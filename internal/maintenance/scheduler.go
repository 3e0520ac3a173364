package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jihan212/BUBT-DX/internal/app"
)

// Scheduler runs background housekeeping on cron schedules. Currently the
// only job is purging expired refresh tokens.
type Scheduler struct {
	cron *cron.Cron
	auth *app.AuthService
}

func NewScheduler(auth *app.AuthService) *Scheduler {
	return &Scheduler{cron: cron.New(), auth: auth}
}

func (s *Scheduler) Start(purgeSpec string) error {
	_, err := s.cron.AddFunc(purgeSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.auth.PurgeExpiredTokens(ctx); err != nil {
			logrus.WithError(err).Error("refresh token purge failed")
			return
		}
		logrus.Info("expired refresh tokens purged")
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
