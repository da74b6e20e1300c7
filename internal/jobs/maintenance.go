package jobs

import (
	"context"
	"fmt"

	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/sirupsen/logrus"
)

// Maintenance bundles the periodic cleanup work: expiring invite tokens and
// dropping stale notifications.
type Maintenance struct {
	InviteService       *services.InviteService
	NotificationService *services.NotificationService
}

func NewMaintenance(inviteService *services.InviteService, notifService *services.NotificationService) *Maintenance {
	return &Maintenance{
		InviteService:       inviteService,
		NotificationService: notifService,
	}
}

// RunNightly disables invite tokens that are past their expiry.
func (m *Maintenance) RunNightly(ctx context.Context) error {
	if err := m.InviteService.SweepExpired(ctx); err != nil {
		return fmt.Errorf("invite sweep failed: %v", err)
	}

	logrus.Info("Nightly invite sweep completed")
	return nil
}

// RunHourly deletes notifications past their expiry.
func (m *Maintenance) RunHourly(ctx context.Context) error {
	if err := m.NotificationService.DeleteExpiredNotifications(ctx); err != nil {
		return fmt.Errorf("notification cleanup failed: %v", err)
	}

	return nil
}
