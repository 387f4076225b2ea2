package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

type captureWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishWrapsEnvelope(t *testing.T) {
	t.Parallel()
	w := &captureWriter{}
	p := newProducerWithWriter(w, nil)

	payload := IssueAnalyzedPayload{LegalIssue: "breach of contract", ConfidenceScore: 0.7}
	require.NoError(t, p.Publish(context.Background(), TopicIssueAnalyzed, "breach of contract", payload))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, TopicIssueAnalyzed, msg.Topic)
	assert.Equal(t, []byte("breach of contract"), msg.Key)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &envelope))
	assert.Equal(t, TopicIssueAnalyzed, envelope.EventType)
	assert.Equal(t, eventSource, envelope.Source)
	assert.NotEmpty(t, envelope.EventID)

	var got IssueAnalyzedPayload
	require.NoError(t, json.Unmarshal(envelope.Payload, &got))
	assert.Equal(t, payload.LegalIssue, got.LegalIssue)
}

func TestProducer_PublishWriteFailure(t *testing.T) {
	t.Parallel()
	w := &captureWriter{err: errors.New("broker down")}
	p := newProducerWithWriter(w, nil)

	err := p.Publish(context.Background(), TopicCorpusIngested, "corpus", CorpusIngestedPayload{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeExternalService))

	_, failed := p.Stats()
	assert.Equal(t, int64(1), failed)
}

func TestProducer_PublishAfterClose(t *testing.T) {
	t.Parallel()
	w := &captureWriter{}
	p := newProducerWithWriter(w, nil)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), TopicIssueAnalyzed, "k", struct{}{})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeServiceUnavailable))
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	t.Parallel()
	_, err := NewProducer(ProducerConfig{}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeBadRequest))
}
