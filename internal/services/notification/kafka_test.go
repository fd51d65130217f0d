package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"ledger/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

var _ MessageWriter = (*kafka.Writer)(nil)

func TestKafkaNotifier_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	n := NewKafkaNotifier(w)

	acc := models.NewAccount("B", decimal.RequireFromString("100"))
	require.NoError(t, n.NotifyAboutTransfer(context.Background(), acc, "credited"))

	require.Len(t, w.messages, 1)
	assert.Equal(t, "B", string(w.messages[0].Key))

	var got Notification
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &got))
	assert.Equal(t, "B", got.AccountID)
	assert.Equal(t, "credited", got.Message)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	n := NewKafkaNotifier(w)

	err := n.NotifyAboutTransfer(context.Background(), models.NewAccount("B", decimal.Zero), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, w.err)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "ledger.notifications", nil)
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "ledger.notifications", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
}
