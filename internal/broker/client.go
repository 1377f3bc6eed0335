package broker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
)

// IdentityClient is the gateway-side surface of the identity RPC. Declared
// as an interface so handlers can be tested against a stub.
type IdentityClient interface {
	Call(ctx context.Context, cmd Command, payload any) (json.RawMessage, *apperrors.AppError)
}

// Client implements request/reply over the broker: requests go to the
// durable RPC queue, replies come back on an exclusive auto-delete queue and
// are matched to waiting callers by correlation ID.
type Client struct {
	ch         *amqp.Channel
	queue      string
	replyQueue string

	mu      sync.Mutex
	pending map[string]chan Response
	closed  bool
}

func NewClient(ch *amqp.Channel, queue string) (*Client, error) {
	c := &Client{
		ch:      ch,
		queue:   queue,
		pending: make(map[string]chan Response),
	}

	q, err := ch.QueueDeclare(
		"",    // broker-named
		false, // durable
		true,  // autoDelete
		true,  // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}
	c.replyQueue = q.Name

	deliveries, err := ch.Consume(q.Name, "gateway", true, true, false, false, nil)
	if err != nil {
		return nil, err
	}

	go c.consumeReplies(deliveries)

	return c, nil
}

func (c *Client) consumeReplies(deliveries <-chan amqp.Delivery) {
	log := logger.WithComponent("broker_client")

	for d := range deliveries {
		var resp Response
		if err := json.Unmarshal(d.Body, &resp); err != nil {
			log.Warn().Err(err).Str("correlation_id", d.CorrelationId).Msg("invalid reply; dropping")
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[d.CorrelationId]
		if ok {
			delete(c.pending, d.CorrelationId)
		}
		c.mu.Unlock()

		if ok {
			ch <- resp
		}
	}

	// The reply consumer died with the channel; fail all waiters.
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

// Call performs one RPC round-trip. The deadline comes from ctx; on expiry
// the in-flight request is abandoned and a late reply is dropped.
func (c *Client) Call(ctx context.Context, cmd Command, payload any) (json.RawMessage, *apperrors.AppError) {
	req, err := NewRequest(cmd, payload)
	if err != nil {
		return nil, apperrors.NewInternal("failed to encode request")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternal("failed to encode request")
	}

	corrID := uuid.NewString()
	respCh := make(chan Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, apperrors.NewUpstream("identity service unavailable")
	}
	c.pending[corrID] = respCh
	c.mu.Unlock()

	if err := c.ch.PublishWithContext(
		ctx,
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: corrID,
			ReplyTo:       c.replyQueue,
			DeliveryMode:  amqp.Persistent,
			Body:          body,
		},
	); err != nil {
		c.mu.Lock()
		delete(c.pending, corrID)
		c.mu.Unlock()
		return nil, apperrors.NewUpstream("identity service unavailable")
	}

	select {
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, corrID)
		c.mu.Unlock()
		return nil, apperrors.NewUpstream("identity service timed out")

	case resp, ok := <-respCh:
		if !ok {
			return nil, apperrors.NewUpstream("identity service unavailable")
		}
		if !resp.OK {
			return nil, apperrors.FromCode(apperrors.ErrorCode(resp.Code), resp.Error)
		}
		return resp.Body, nil
	}
}
