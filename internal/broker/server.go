package broker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/dto"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/identity"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/workerpool"
)

const (
	prefetchCount = 16

	// defaultDispatchTimeout bounds a single request's store, cache and SMTP
	// work. Clients abandon the reply well before this, so a hung dependency
	// must not pin a pool worker any longer.
	defaultDispatchTimeout = 30 * time.Second
)

// Server consumes identity RPC requests from the durable queue and replies
// to each message's reply-to queue with its correlation ID. Acknowledgements
// are manual; a reply is always published before the ack so the client never
// hangs on a consumed message.
type Server struct {
	ch      *amqp.Channel
	queue   string
	svc     *identity.Service
	pool    *workerpool.Pool
	timeout time.Duration
}

func NewServer(ch *amqp.Channel, queue string, svc *identity.Service, pool *workerpool.Pool) *Server {
	return &Server{ch: ch, queue: queue, svc: svc, pool: pool, timeout: defaultDispatchTimeout}
}

// Start declares the queue and begins consuming. It returns after the
// consumer goroutine is running; cancellation of ctx stops consumption.
func (s *Server) Start(ctx context.Context) error {
	log := logger.WithComponent("broker_server")

	q, err := s.ch.QueueDeclare(
		s.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return err
	}

	if err := s.ch.Qos(prefetchCount, 0, false); err != nil {
		return err
	}

	deliveries, err := s.ch.Consume(q.Name, "identity-service", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				delivery := d
				accepted := s.pool.Submit(func() {
					s.handleDelivery(ctx, delivery)
				})
				if !accepted {
					// Pool is shutting down; requeue for the next consumer.
					_ = delivery.Nack(false, true)
					return
				}
			}
		}
	}()

	log.Info().Str("queue", q.Name).Msg("identity RPC server started")
	return nil
}

// handleDelivery dispatches one request and always acks: RPC callers wait on
// the reply, so requeueing a poison message would only stall them.
func (s *Server) handleDelivery(ctx context.Context, d amqp.Delivery) {
	log := logger.WithComponent("broker_server").With().
		Str("correlation_id", d.CorrelationId).
		Logger()

	var req Request
	resp := Response{}
	if err := json.Unmarshal(d.Body, &req); err != nil {
		log.Warn().Err(err).Msg("invalid request envelope")
		resp = errResponse(string(apperrors.ErrCodeValidation), "invalid request envelope")
	} else {
		dispatchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		resp = s.dispatch(dispatchCtx, req)
		cancel()
	}

	if d.ReplyTo != "" {
		payload, err := json.Marshal(resp)
		if err != nil {
			log.Error().Err(err).Msg("failed to encode reply")
		} else if err := s.ch.PublishWithContext(
			ctx,
			"",        // default exchange
			d.ReplyTo, // routing key
			false,     // mandatory
			false,     // immediate
			amqp.Publishing{
				ContentType:   "application/json",
				CorrelationId: d.CorrelationId,
				Body:          payload,
			},
		); err != nil {
			log.Error().Err(err).Msg("failed to publish reply")
		}
	}

	_ = d.Ack(false)
}

func (s *Server) dispatch(ctx context.Context, req Request) Response {
	switch req.Command {
	case CommandSignUp:
		var payload dto.SignUpRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return errResponse(string(apperrors.ErrCodeValidation), "invalid sign-up payload")
		}
		resp, appErr := s.svc.SignUp(ctx, payload)
		if appErr != nil {
			return errResponse(string(appErr.Code), appErr.Message)
		}
		return okResponse(resp)

	case CommandSignIn:
		var payload dto.SignInRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return errResponse(string(apperrors.ErrCodeValidation), "invalid sign-in payload")
		}
		resp, appErr := s.svc.SignIn(ctx, payload)
		if appErr != nil {
			return errResponse(string(appErr.Code), appErr.Message)
		}
		return okResponse(resp)

	case CommandRefresh:
		var payload dto.TokenRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return errResponse(string(apperrors.ErrCodeValidation), "invalid refresh payload")
		}
		resp, appErr := s.svc.Refresh(ctx, payload.Token)
		if appErr != nil {
			return errResponse(string(appErr.Code), appErr.Message)
		}
		return okResponse(resp)

	case CommandValidate:
		var payload dto.TokenRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return errResponse(string(apperrors.ErrCodeValidation), "invalid validate payload")
		}
		resp, appErr := s.svc.Validate(ctx, payload.Token)
		if appErr != nil {
			return errResponse(string(appErr.Code), appErr.Message)
		}
		return okResponse(resp)

	case CommandVerify:
		var payload dto.VerifyUserRequest
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return errResponse(string(apperrors.ErrCodeValidation), "invalid verify payload")
		}
		resp, appErr := s.svc.VerifyUser(ctx, payload)
		if appErr != nil {
			return errResponse(string(appErr.Code), appErr.Message)
		}
		return okResponse(resp)

	default:
		return errResponse(string(apperrors.ErrCodeValidation), "unknown command")
	}
}
