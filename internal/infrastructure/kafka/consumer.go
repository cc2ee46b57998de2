package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/jitter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const (
	handleAttempts = 3
	handleBackoff  = 500 * time.Millisecond
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AlertConsumer читает alert.triggered и передаёт их в NotifyUC.
// Сообщение коммитится после обработки, даже неуспешной, чтобы не блокировать партицию.
type AlertConsumer struct {
	reader  messageReader
	handler usecase.NotifyUC
	logger  logger.Logger
	backoff time.Duration
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewAlertConsumer(c *cfg.KafkaCfg, handler usecase.NotifyUC, logger logger.Logger) *AlertConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})

	return newAlertConsumer(reader, handler, logger)
}

func newAlertConsumer(reader messageReader, handler usecase.NotifyUC, logger logger.Logger) *AlertConsumer {
	return &AlertConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger,
		backoff: handleBackoff,
		stop:    make(chan struct{}),
	}
}

func (c *AlertConsumer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		c.run(ctx)
	}()

	// FetchMessage блокируется до сообщения, поэтому Stop отменяет контекст
	go func() {
		select {
		case <-c.stop:
			cancel()
		case <-ctx.Done():
		}
	}()
}

// Stop останавливает цикл чтения и закрывает reader.
func (c *AlertConsumer) Stop() error {
	close(c.stop)
	c.wg.Wait()

	return c.reader.Close()
}

func (c *AlertConsumer) run(ctx context.Context) {
	c.logger.Infof("Alert consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				c.logger.Infof("Alert consumer stopped")
				return
			}
			c.logger.Warnf("Kafka fetch failed: %v", err)
			if !jitter.Sleep(ctx.Done(), jitter.Duration(c.backoff, jitter.DefaultJitter)) {
				return
			}
			continue
		}

		if t, ok := headerValue(msg, headerEventType); ok && t != usecase.EventAlertTriggered {
			c.logger.Debugf("skipping %s message at offset %d", t, msg.Offset)
		} else {
			c.handle(ctx, msg)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warnf("Kafka commit failed at offset %d: %v", msg.Offset, err)
		}
	}
}

func (c *AlertConsumer) handle(ctx context.Context, msg kafka.Message) {
	for attempt := 0; attempt < handleAttempts; attempt++ {
		err := c.handler.HandleAlertTriggered(ctx, msg.Value)
		if err == nil {
			return
		}

		if attempt == handleAttempts-1 {
			c.logger.Errorf(err, "dropping alert message key=%s offset=%d after %d attempts", msg.Key, msg.Offset, handleAttempts)
			return
		}

		delay := jitter.ExponentialBackoff(c.backoff, 10*c.backoff, attempt, jitter.DefaultJitter)
		c.logger.Warnf("alert message handling failed, retrying in %v (attempt %d): %v", delay, attempt+1, err)
		if !jitter.Sleep(ctx.Done(), delay) {
			return
		}
	}
}
