package rabbitmq

// Имена очереди и ключа маршрутизации напоминаний о продлении подписок.
const (
	RenewalQueue      = "renewal.upcoming"
	RenewalRoutingKey = "upcoming"
)

// QueueConfig описывает очередь и её ключ маршрутизации в обменнике уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые должны существовать
// в обменнике уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: RenewalQueue, RoutingKey: RenewalRoutingKey},
		// при необходимости дополнительные очереди для других воркеров
	}
}
