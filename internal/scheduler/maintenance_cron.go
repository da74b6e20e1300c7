package cron

import (
	"context"

	"github.com/codonyx/codonyx-api/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartMaintenanceCronJobs wires the periodic cleanup schedule.
func StartMaintenanceCronJobs(maintenance *jobs.Maintenance) {
	c := cron.New()

	// Invite token sweep at midnight
	c.AddFunc("0 0 * * *", func() {
		if err := maintenance.RunNightly(context.Background()); err != nil {
			logrus.WithError(err).Error("Nightly maintenance failed")
		}
	})

	// Expired notification cleanup
	c.AddFunc("@hourly", func() {
		if err := maintenance.RunHourly(context.Background()); err != nil {
			logrus.WithError(err).Error("Hourly maintenance failed")
		}
	})

	c.Start()
}
