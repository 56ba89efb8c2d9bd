// FILE: internal/service/audit_service.go
package service

import (
	"context"
	"encoding/json"

	"chatshot-be/internal/pkg/logger"
	"chatshot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService drains the in-process event stream and writes every domain
// event to the structured log, so saves, deletes and store fallbacks stay
// observable without touching the request path.
type auditService struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, log logger.ILogger) IAuditService {
	return &auditService{
		pubSub: pubSub,
		log:    log,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, events.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		as.log.Warn("audit", "dropping malformed event", map[string]interface{}{"error": err.Error()})
		return
	}

	details := map[string]interface{}{
		"occurred_at": envelope.OccurredAt,
	}
	for k, v := range envelope.Payload {
		details[k] = v
	}

	switch envelope.Type {
	case events.TypeStoreReadFailed:
		// Silent data loss on the user side; loud here.
		as.log.Warn("audit", envelope.Type, details)
	default:
		as.log.Info("audit", envelope.Type, details)
	}
}
