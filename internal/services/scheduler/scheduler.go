// Package services содержит планировщик напоминаний о предстоящих
// продлениях подписок.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/finance-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
	"github.com/magabrotheeeer/finance-aggregator/internal/rabbitmq"
)

// SubscriptionRepository определяет выборку подписок для напоминаний.
type SubscriptionRepository interface {
	// FindSubscriptionsRenewingOn возвращает активные подписки,
	// продлевающиеся в указанную дату, вместе с email владельца.
	FindSubscriptionsRenewingOn(ctx context.Context, date time.Time) ([]*models.RenewalInfo, error)
}

// SchedulerService периодически находит подписки с продлением на завтра
// и публикует напоминания в очередь уведомлений.
type SchedulerService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindSubscriptionsRenewingTomorrow запускает поиск сразу, затем каждые 12 часов.
func (s *SchedulerService) FindSubscriptionsRenewingTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindSubscriptionsRenewingTomorrow(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindSubscriptionsRenewingTomorrow(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindSubscriptionsRenewingTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find subscriptions renewing tomorrow")
	tomorrow := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)

	renewals, err := s.repo.FindSubscriptionsRenewingOn(ctx, tomorrow)
	if err != nil {
		s.log.Error("failed to find renewing subscriptions", sl.Err(err))
		return
	}
	if len(renewals) == 0 {
		s.log.Info("no renewing subscriptions found")
		return
	}
	s.log.Info("found renewing subscriptions", "count", len(renewals))
	for _, info := range renewals {
		err = rabbitmq.PublishMessage(channel, rabbitmq.NotificationsExchange, rabbitmq.RenewalRoutingKey, info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
