package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/getAlby/votehub.go/lib/registry"
)

var webhookClient = &http.Client{Timeout: 10 * time.Second}

func (svc *RegistryService) StartWebhookSubscription(ctx context.Context, url string) {

	svc.Logger.Infof("Starting webhook subscription with webhook url %s", url)
	events, votes, err := svc.SubscribeEventsAndVotes(ctx)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			svc.postToWebhook(ctx, event, url)
		case vote, ok := <-votes:
			if !ok {
				return
			}
			svc.postToWebhook(ctx, vote, url)
		}
	}
}

func (svc *RegistryService) postToWebhook(ctx context.Context, n registry.Notification, url string) {

	payload := new(bytes.Buffer)
	err := svc.EncodeNotification(ctx, payload, n)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := webhookClient.Do(req)
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			svc.Logger.Error(err)
		}
		svc.Logger.Errorf("Webhook status code was %d, body: %s", resp.StatusCode, msg)
	}
}
