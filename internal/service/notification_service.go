package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/config"
	"github.com/casaflow/community-service/internal/events"
)

// NotificationService renders owner and technician notices for work-item
// events. Delivery transport stays stubbed; only formatting and routing live
// here.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventWorkItemCreated, n.handleWorkItemCreated)
	n.dispatcher.Subscribe(events.EventWorkItemAssigned, n.handleWorkItemAssigned)
	n.dispatcher.Subscribe(events.EventServiceApproved, n.handleServiceApproved)
}

func (n *NotificationService) handleWorkItemCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("WorkItemCreated", zap.String("work_item_id", event.WorkItemID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleWorkItemAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("WorkItemAssigned", zap.String("work_item_id", event.WorkItemID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleServiceApproved(ctx context.Context, event events.Event) error {
	n.logger.Info("ServiceRequestApproved", zap.String("work_item_id", event.WorkItemID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("work_item_id", event.WorkItemID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("work_item_id", event.WorkItemID),
		zap.String("event_type", string(event.Type)))
}
