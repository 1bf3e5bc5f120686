package source

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrIncompleteRead means a partition could not be read up to the high-water
// mark within the read timeout
var ErrIncompleteRead = errors.New("timed out before reaching high-water mark")

// SASLConfig holds SASL authentication configuration
type SASLConfig struct {
	Enabled       bool
	Mechanism     string
	Username      string
	Password      string
	Protocol      string
	SkipTLSVerify bool
}

// KafkaConfig holds configuration for reading a topic as a text body
type KafkaConfig struct {
	Brokers     []string
	Partitions  []int
	SASL        SASLConfig
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// KafkaSource loads every message of a topic, addressed as kafka://topic.
// Each message value becomes one line: partitions in ascending order, offsets
// in ascending order within a partition. Reading stops at the high-water mark
// observed when Load starts.
type KafkaSource struct {
	config KafkaConfig
	log    logrus.FieldLogger
}

// NewKafkaSource creates a new KafkaSource
func NewKafkaSource(config KafkaConfig, log logrus.FieldLogger) (*KafkaSource, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required")
	}
	if config.SASL.Enabled {
		if _, err := createSASLMechanism(config.SASL); err != nil {
			return nil, err
		}
	}
	if config.DialTimeout <= 0 {
		config.DialTimeout = 30 * time.Second
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = 5 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &KafkaSource{
		config: config,
		log:    log,
	}, nil
}

// ParseKafkaID extracts the topic from kafka://topic
func ParseKafkaID(id string) (string, error) {
	topic, ok := strings.CutPrefix(id, KafkaScheme)
	if !ok {
		return "", fmt.Errorf("not a kafka identifier: %q", id)
	}
	topic = strings.Trim(topic, "/")
	if topic == "" || strings.Contains(topic, "/") {
		return "", fmt.Errorf("kafka identifier must look like kafka://topic: %q", id)
	}
	return topic, nil
}

// createSASLMechanism creates the appropriate SASL mechanism based on configuration
func createSASLMechanism(config SASLConfig) (sasl.Mechanism, error) {
	switch config.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: config.Username,
			Password: config.Password,
		}, nil

	case "SCRAM-SHA-256":
		mechanism, err := scram.Mechanism(scram.SHA256, config.Username, config.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to create SCRAM-SHA-256 mechanism: %w", err)
		}
		return mechanism, nil

	case "SCRAM-SHA-512":
		mechanism, err := scram.Mechanism(scram.SHA512, config.Username, config.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to create SCRAM-SHA-512 mechanism: %w", err)
		}
		return mechanism, nil

	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", config.Mechanism)
	}
}

// dialer builds a kafka dialer carrying SASL and TLS settings
func (s *KafkaSource) dialer() (*kafka.Dialer, error) {
	dialer := &kafka.Dialer{
		Timeout: s.config.DialTimeout,
	}

	if s.config.SASL.Enabled {
		mechanism, err := createSASLMechanism(s.config.SASL)
		if err != nil {
			return nil, err
		}
		dialer.SASLMechanism = mechanism
	}

	if s.config.SASL.Protocol == "SSL" || s.config.SASL.Protocol == "SASL_SSL" {
		dialer.TLS = &tls.Config{
			InsecureSkipVerify: s.config.SASL.SkipTLSVerify,
		}
	}

	return dialer, nil
}

// partitionRange is the span of offsets to read from one partition
type partitionRange struct {
	partition int
	first     int64
	last      int64
}

// Load implements ports.Source
func (s *KafkaSource) Load(ctx context.Context, id string) (string, error) {
	topic, err := ParseKafkaID(id)
	if err != nil {
		return "", err
	}

	dialer, err := s.dialer()
	if err != nil {
		return "", err
	}

	ranges, err := s.partitionRanges(ctx, dialer, topic)
	if err != nil {
		return "", err
	}

	values := make([][]string, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, pr := range ranges {
		g.Go(func() error {
			lines, err := s.readPartition(gctx, dialer, topic, pr)
			if err != nil {
				return err
			}
			values[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return joinValues(values), nil
}

// partitionRanges connects to the first reachable broker and returns the
// offset span of every selected partition
func (s *KafkaSource) partitionRanges(ctx context.Context, dialer *kafka.Dialer, topic string) ([]partitionRange, error) {
	var lastErr error
	for _, broker := range s.config.Brokers {
		log := s.log.WithFields(logrus.Fields{
			"broker": broker,
			"topic":  topic,
			"sasl":   s.config.SASL.Enabled,
		})
		log.Debug("Attempting to connect to broker")

		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = fmt.Errorf("failed to connect to broker %s: %w", broker, err)
			log.WithError(err).Warn("Connection error, trying next broker")
			continue
		}

		partitions, err := conn.ReadPartitions(topic)
		conn.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to get partitions: %w", err)
		}

		ids := make([]int, 0, len(partitions))
		for _, p := range partitions {
			if p.Topic == topic {
				ids = append(ids, p.ID)
			}
		}
		ids = selectPartitions(ids, s.config.Partitions)
		slices.Sort(ids)
		if len(ids) == 0 {
			return nil, fmt.Errorf("no partitions available for topic %s", topic)
		}
		log.WithField("partitions", len(ids)).Debug("Found partitions")

		ranges := make([]partitionRange, 0, len(ids))
		for _, id := range ids {
			pr, err := s.offsets(ctx, dialer, broker, topic, id)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, pr)
		}
		return ranges, nil
	}

	return nil, fmt.Errorf("failed to connect to any Kafka broker: %w", lastErr)
}

func (s *KafkaSource) offsets(ctx context.Context, dialer *kafka.Dialer, broker, topic string, partition int) (partitionRange, error) {
	conn, err := dialer.DialLeader(ctx, "tcp", broker, topic, partition)
	if err != nil {
		return partitionRange{}, fmt.Errorf("failed to reach leader of partition %d: %w", partition, err)
	}
	defer conn.Close()

	first, last, err := conn.ReadOffsets()
	if err != nil {
		return partitionRange{}, fmt.Errorf("failed to read offsets of partition %d: %w", partition, err)
	}
	return partitionRange{partition: partition, first: first, last: last}, nil
}

// readPartition reads messages in [first, last) from a single partition
func (s *KafkaSource) readPartition(ctx context.Context, dialer *kafka.Dialer, topic string, pr partitionRange) ([]string, error) {
	if pr.first >= pr.last {
		return nil, nil
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:         s.config.Brokers,
		Topic:           topic,
		Partition:       pr.partition,
		Dialer:          dialer,
		MinBytes:        1,
		MaxBytes:        10e6,
		MaxWait:         500 * time.Millisecond,
		ReadLagInterval: -1,
		ReadBackoffMin:  100 * time.Millisecond,
		ReadBackoffMax:  1 * time.Second,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.WithError(err).WithField("partition", pr.partition).Warn("Error closing reader")
		}
	}()

	if err := reader.SetOffset(pr.first); err != nil {
		return nil, fmt.Errorf("failed to seek partition %d: %w", pr.partition, err)
	}

	return s.drain(ctx, reader, pr)
}

// messageReader is the part of *kafka.Reader that drain needs
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// drain reads from r until the offset reaches pr.last. A read that times out
// first fails the whole load with ErrIncompleteRead.
func (s *KafkaSource) drain(ctx context.Context, r messageReader, pr partitionRange) ([]string, error) {
	var lines []string
	for offset := pr.first; offset < pr.last; {
		readCtx, cancel := context.WithTimeout(ctx, s.config.ReadTimeout)
		msg, err := r.ReadMessage(readCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				s.log.WithFields(logrus.Fields{
					"partition": pr.partition,
					"offset":    offset,
					"last":      pr.last,
					"read":      len(lines),
				}).Warn("Timed out before reaching high-water mark")
				return nil, fmt.Errorf("partition %d stopped at offset %d, %d offsets short of %d: %w",
					pr.partition, offset, pr.last-offset, pr.last, ErrIncompleteRead)
			}
			return nil, fmt.Errorf("error reading from partition %d: %w", pr.partition, err)
		}
		lines = append(lines, string(msg.Value))
		offset = msg.Offset + 1
	}
	return lines, nil
}

// selectPartitions keeps only the requested partitions, or all of them when
// none are requested
func selectPartitions(available, requested []int) []int {
	if len(requested) == 0 {
		return available
	}
	use := make([]int, 0, len(requested))
	for _, p := range available {
		for _, requestedP := range requested {
			if p == requestedP {
				use = append(use, p)
				break
			}
		}
	}
	return use
}

// joinValues concatenates per-partition message values into one body
func joinValues(values [][]string) string {
	var b strings.Builder
	first := true
	for _, lines := range values {
		for _, line := range lines {
			if !first {
				b.WriteByte('\n')
			}
			b.WriteString(line)
			first = false
		}
	}
	return b.String()
}
