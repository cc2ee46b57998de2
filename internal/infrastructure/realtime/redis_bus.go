package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/clients"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	channelPrefix      = "changes:"
	subscriptionBuffer = 64
)

// RedisBus — шина изменений поверх Redis pub/sub, один канал на владельца.
type RedisBus struct {
	client *clients.RedisClient
	logger logger.Logger
}

func NewRedisBus(client *clients.RedisClient, logger logger.Logger) *RedisBus {
	return &RedisBus{
		client: client,
		logger: logger,
	}
}

func (b *RedisBus) Publish(ctx context.Context, event domain.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := b.client.Client.Publish(ctx, channelName(event.OwnerID), data).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Subscribe возвращается после подтверждения подписки сервером.
func (b *RedisBus) Subscribe(ctx context.Context, filter domain.ChangeFilter) (usecase.Subscription, error) {
	ps := b.client.Client.Subscribe(ctx, channelName(filter.OwnerID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return newSubscription(filter, ps.Channel(), ps.Close, b.logger), nil
}

func channelName(ownerID uuid.UUID) string {
	return channelPrefix + ownerID.String()
}

type subscription struct {
	filter    domain.ChangeFilter
	events    chan domain.ChangeEvent
	done      chan struct{}
	finished  chan struct{}
	closeOnce sync.Once
	closeErr  error
	closeSrc  func() error
	logger    logger.Logger
}

func newSubscription(filter domain.ChangeFilter, msgs <-chan *r.Message, closeSrc func() error, log logger.Logger) *subscription {
	s := &subscription{
		filter:   filter,
		events:   make(chan domain.ChangeEvent, subscriptionBuffer),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		closeSrc: closeSrc,
		logger:   log,
	}
	go s.run(msgs)

	return s
}

func (s *subscription) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Close идемпотентен; после возврата канал Events закрыт.
func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.closeSrc()
		<-s.finished
	})

	return s.closeErr
}

func (s *subscription) run(msgs <-chan *r.Message) {
	defer close(s.finished)
	defer close(s.events)

	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			var ev domain.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				s.logger.Warnf("skipping malformed change event on %s: %v", msg.Channel, err)
				continue
			}
			if !s.filter.Matches(ev) {
				continue
			}

			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}
}
