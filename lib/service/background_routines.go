package service

import (
	"context"
)

// StartNotificationPublisher forwards registry notifications to rabbitmq
// until ctx is done. Without a rabbitmq client it returns immediately.
func (svc *RegistryService) StartNotificationPublisher(ctx context.Context) (err error) {
	if svc.RabbitMQClient == nil {
		return nil
	}
	err = svc.RabbitMQClient.StartPublishNotifications(ctx,
		svc.SubscribeEventsAndVotes,
		svc.EncodeNotification,
	)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}
