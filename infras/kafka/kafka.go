package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"resto/config"
	"resto/infras/otel"
	"resto/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writerBatchTimeout = 10 * time.Millisecond

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Publisher emits domain events keyed by aggregate id.
type Publisher interface {
	Publish(ctx context.Context, messages ...Message) error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

type publisherImpl struct {
	topic  string
	writer writer
	otel   otel.Otel
}

// New builds a publisher for KAFKA_TOPIC. When Kafka is disabled events are dropped.
func New(cfg *config.Config, otl otel.Otel) Publisher {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		log.Warn().Msg("Kafka disabled, domain events will not be published")

		return noop{}
	}

	transport := &kafkaGo.Transport{}
	if cfg.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka publisher initialized")

	return NewPublisher(cfg.Kafka.Topic, &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
		Topic:                  cfg.Kafka.Topic,
		Transport:              transport,
		AllowAutoTopicCreation: true,
		Balancer:               &kafkaGo.Hash{},
		BatchTimeout:           writerBatchTimeout,
		RequiredAcks:           kafkaGo.RequireOne,
	}, otl)
}

func NewPublisher(topic string, w writer, otl otel.Otel) Publisher {
	return &publisherImpl{
		topic:  topic,
		writer: w,
		otel:   otl,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, messages ...Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("messaging.destination", p.topic)

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	if err = p.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", p.topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

type noop struct{}

func (noop) Publish(_ context.Context, _ ...Message) error {
	return nil
}
