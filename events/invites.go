package events

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"workflowpro-backend/errs"
	"workflowpro-backend/log"
)

// InviteEvent is what the API publishes and the mailer worker consumes.
type InviteEvent struct {
	Email    string `json:"email"`
	TeamName string `json:"teamName"`
	Inviter  string `json:"inviter"`
	Token    string `json:"token"`
}

func PublishInvite(event *InviteEvent) error {
	EnsureEvents()

	body, err := json.Marshal(event)
	if err != nil {
		log.Logger.Error("failed marshaling invite event", zap.Error(err))
		return errs.ErrQueue
	}

	ch, err := e.Conn.Channel()
	if err != nil {
		log.Logger.Error("failed opening channel", zap.Error(err))
		return errs.ErrQueue
	}
	defer ch.Close()

	err = ch.Publish(InvitesExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Logger.Error("failed publishing invite event", zap.Error(err))
		return errs.ErrQueue
	}

	return nil
}

// ConsumeInvites binds a queue to the invite exchange and decodes events
// onto the returned channel until the context is cancelled.
func ConsumeInvites(ctx context.Context) (<-chan *InviteEvent, error) {
	EnsureEvents()

	ch, err := e.Conn.Channel()
	if err != nil {
		log.Logger.Error("failed opening channel", zap.Error(err))
		return nil, errs.ErrQueue
	}

	q, err := ch.QueueDeclare("invite-mailer", true, false, false, false, nil)
	if err != nil {
		log.Logger.Error("failed declaring queue", zap.Error(err))
		return nil, errs.ErrQueue
	}

	if err := ch.QueueBind(q.Name, "", InvitesExchange, false, nil); err != nil {
		log.Logger.Error("failed binding queue", zap.Error(err))
		return nil, errs.ErrQueue
	}

	deliveries, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		log.Logger.Error("failed starting consumer", zap.Error(err))
		return nil, errs.ErrQueue
	}

	out := make(chan *InviteEvent)
	go func() {
		defer close(out)
		defer ch.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				event := &InviteEvent{}
				if err := json.Unmarshal(d.Body, event); err != nil {
					log.Logger.Error("failed decoding invite event", zap.Error(err))
					continue
				}

				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
