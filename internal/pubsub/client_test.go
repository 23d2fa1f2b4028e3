package pubsub

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	UserID string `msgpack:"user_id"`
	Count  int    `msgpack:"count"`
}

func TestParsePush(t *testing.T) {
	raw, err := msgpack.Marshal(payload{UserID: "u1", Count: 3})
	require.NoError(t, err)
	body := fmt.Sprintf(`{"subscription":"projects/p/subscriptions/s","message":{"data":%q,"attributes":{"event":"announce"},"messageId":"1"}}`,
		base64.StdEncoding.EncodeToString(raw))

	event, data, err := ParsePush([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, EventAnnounce, event)

	var got payload
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, payload{UserID: "u1", Count: 3}, got)
}

func TestParsePush_Invalid(t *testing.T) {
	_, _, err := ParsePush([]byte("not json"))
	assert.Error(t, err)

	_, _, err = ParsePush([]byte(`{"message":{"data":"%%%"}}`))
	assert.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	var got payload
	assert.Error(t, Decode([]byte{0xc1}, &got))
}

func TestMock(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventAnnounce, payload{UserID: "u1"}))
	require.Len(t, m.SendMessageCalls, 1)
	assert.Equal(t, EventAnnounce, m.SendMessageCalls[0].Event)

	raw, err := msgpack.Marshal(payload{Count: 7})
	require.NoError(t, err)
	var got payload
	require.NoError(t, m.ProcessMessage(raw, &got))
	assert.Equal(t, 7, got.Count)

	require.NoError(t, m.Close())
	assert.True(t, m.Closed)
}
