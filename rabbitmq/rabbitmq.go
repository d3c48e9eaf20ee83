package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/getAlby/votehub.go/common"
	"github.com/getAlby/votehub.go/lib/registry"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool reuses encoding buffers between published notifications.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type (
	SubscribeToNotificationsFunc = func(ctx context.Context) (events chan registry.Notification, votes chan registry.Notification, err error)
	EncodeNotificationFunc       = func(ctx context.Context, w io.Writer, n registry.Notification) error
)

type Client interface {
	StartPublishNotifications(context.Context, SubscribeToNotificationsFunc, EncodeNotificationFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	registryExchange string
}

type ClientOption = func(client *DefaultClient)

func WithRegistryExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.registryExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		registryExchange: "votehub_registry",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func RoutingKey(kind string) (string, error) {
	switch kind {
	case registry.NotificationEventAdded:
		return common.RoutingKeyEventAdded, nil
	case registry.NotificationVoteSubmitted:
		return common.RoutingKeyVoteSubmitted, nil
	default:
		return "", fmt.Errorf("no routing key for notification kind %q", kind)
	}
}

func (client *DefaultClient) StartPublishNotifications(ctx context.Context, subscribeFunc SubscribeToNotificationsFunc, payloadFunc EncodeNotificationFunc) error {
	err := client.amqpClient.ExchangeDeclare(
		client.registryExchange,
		// topic is a type of exchange that allows routing messages to different queue's bases on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	events, votes, err := subscribeFunc(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event, ok := <-events:
			if !ok {
				return context.Canceled
			}
			if err := client.publishToRegistryExchange(ctx, event, payloadFunc); err != nil {
				captureErr(client.logger, err)
			}
		case vote, ok := <-votes:
			if !ok {
				return context.Canceled
			}
			if err := client.publishToRegistryExchange(ctx, vote, payloadFunc); err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToRegistryExchange(ctx context.Context, n registry.Notification, payloadFunc EncodeNotificationFunc) error {
	key, err := RoutingKey(n.Kind)
	if err != nil {
		return err
	}

	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	if err := payloadFunc(ctx, payload, n); err != nil {
		return err
	}

	err = client.amqpClient.PublishWithContext(ctx,
		client.registryExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			MessageId:   uuid.NewString(),
			Timestamp:   time.Now(),
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Successfully published %s for event %d to rabbitmq", n.Kind, n.EventID)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
