package messaging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/pkg/schema"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	topicPartitions        = 3
	topicReplicationFactor = 1
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

// KafkaPublisher writes avro encoded transactions keyed by product id, so
// events for one product stay ordered within a partition.
type KafkaPublisher struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

var _ TransactionPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher connects to seedBrokers and produces to topic
func NewKafkaPublisher(ctx context.Context, seedBrokers []string, topic string) (*KafkaPublisher, error) {
	const op = "NewKafkaPublisher"

	codec, err := schema.NewTransactionCodecV1()
	if err != nil {
		return nil, opErr(err, op)
	}

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	if err := cl.Ping(ctx); err != nil {
		cl.Close()
		return nil, opErr(err, op)
	}

	return NewKafkaPublisherWithClient(cl, codec), nil
}

// NewKafkaPublisherWithClient builds a publisher over an existing client
func NewKafkaPublisherWithClient(cl ProducerClient, encoder Encoder) *KafkaPublisher {
	return &KafkaPublisher{cl: cl, encoder: encoder, opPrefix: "KafkaPublisher"}
}

func (p *KafkaPublisher) Publish(ctx context.Context, txn entity.Transaction) error {
	const op = "Publish"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.encoder.Encode(transactionToSchemaV1(txn))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := &kgo.Record{Key: []byte(txn.ProductID), Value: b}
	if err := p.cl.ProduceSync(ctx, r).FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	log := slog.With("op", makeOp(p.opPrefix, "Close"))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

// TopicAdmin is the subset of kadm.Client used to bootstrap topics
type TopicAdmin interface {
	CreateTopics(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topics ...string) (kadm.CreateTopicResponses, error)
}

// EnsureTopic creates topic if it does not exist yet
func EnsureTopic(ctx context.Context, seedBrokers []string, topic string) error {
	const op = "EnsureTopic"

	cl, err := kadm.NewOptClient(kgo.SeedBrokers(seedBrokers...))
	if err != nil {
		return opErr(err, op)
	}
	defer cl.Close()

	return createTopic(ctx, cl, topic)
}

func createTopic(ctx context.Context, admin TopicAdmin, topic string) error {
	const op = "createTopic"
	log := slog.With("op", op)

	cleanupPolicy := "delete"
	configs := map[string]*string{"cleanup.policy": &cleanupPolicy}

	responses, err := admin.CreateTopics(ctx, topicPartitions, topicReplicationFactor, configs, topic)
	if err != nil {
		return opErr(err, op)
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				log.Info("topic already exists", "topic", res.Topic)
				continue
			}
			errs = append(errs, res.Err)
			continue
		}
		log.Info("topic created", "topic", res.Topic)
	}
	return errors.Join(errs...)
}
