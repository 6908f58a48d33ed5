package kafka

import (
	"encoding/json"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionFromString(t *testing.T) {
	assert.Equal(t, kafkago.Gzip, CompressionFromString("GZIP"))
	assert.Equal(t, kafkago.Lz4, CompressionFromString("lz4"))
	assert.Equal(t, kafkago.Zstd, CompressionFromString("zstd"))
	assert.Equal(t, kafkago.Snappy, CompressionFromString(""))
}

func TestNewMessage(t *testing.T) {
	msg, err := newMessage("rec-1", map[string]int{"size": 4096}, map[string]string{"event_type": "metadata.recorded"})
	require.NoError(t, err)

	assert.Equal(t, []byte("rec-1"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("metadata.recorded"), msg.Headers[0].Value)

	var body map[string]int
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, 4096, body["size"])
}

func TestNewMessageRejectsUnencodable(t *testing.T) {
	_, err := newMessage("k", make(chan int), nil)
	assert.Error(t, err)
}
