package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события outbox. Запись синхронная: строка outbox
// помечается обработанной только после подтверждения от всех реплик.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, c *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        c.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchSize:    outboxBatchSize,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return newProducer(writer, logger, c)
}

func newProducer(w messageWriter, logger logger.Logger, c *cfg.KafkaCfg) *Producer {
	return &Producer{writer: w, logger: logger, cfg: c}
}

// Publish отправляет событие с ключом по товару, чтобы события одного товара шли в одну партицию.
func (p *Producer) Publish(ctx context.Context, ev *usecase.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(ev.ProductID.String()),
		Value: ev.Payload,
		Time:  ev.CreatedAt,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(ev.EventID.String())},
			{Key: headerEventType, Value: []byte(ev.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warnf("publish %s %s to %s failed: %v", ev.EventType, ev.EventID, p.cfg.Topic, err)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureTopic создаёт топик, если его нет. Брокеры перебираются по очереди,
// создание идёт через контроллер кластера.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, broker := range p.cfg.Brokers {
		err := p.ensureTopicVia(ctx, broker)
		if err == nil {
			return nil
		}
		p.logger.Warnf("ensure topic %s via %s: %v", p.cfg.Topic, broker, err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}

	return e.Wrap(whereami.WhereAmI(), fmt.Errorf("topic %s: %w", p.cfg.Topic, errors.Join(errs...)))
}

func (p *Producer) ensureTopicVia(ctx context.Context, broker string) error {
	conn, err := kafka.DialContext(ctx, p.cfg.NetworkMode, broker)
	if err != nil {
		return err
	}
	defer conn.Close()

	if partitions, err := conn.ReadPartitions(p.cfg.Topic); err == nil && len(partitions) > 0 {
		p.logger.Debugf("topic %s exists with %d partitions", p.cfg.Topic, len(partitions))
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	ctrl, err := kafka.DialContext(ctx, p.cfg.NetworkMode, addr)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = ctrl.SetDeadline(deadline)
	}

	err = ctrl.CreateTopics(kafka.TopicConfig{
		Topic:             p.cfg.Topic,
		NumPartitions:     p.cfg.Partitions,
		ReplicationFactor: p.cfg.ReplicationFactor,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return err
	}

	p.logger.Infof("topic %s ready (%d partitions, rf=%d)", p.cfg.Topic, p.cfg.Partitions, p.cfg.ReplicationFactor)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func headerValue(msg kafka.Message, key string) (string, bool) {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}
