package socketio_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload(t *testing.T) {
	_, ok := Payload(nil)
	assert.False(t, ok)

	_, ok = Payload([]interface{}{"not a map"})
	assert.False(t, ok)

	payload, ok := Payload([]interface{}{map[string]interface{}{"game_id": "G1"}})
	assert.True(t, ok)
	assert.Equal(t, "G1", payload["game_id"])
}

func TestFieldExtraction(t *testing.T) {
	// Numbers arrive as float64 after JSON decoding.
	payload := map[string]interface{}{
		"game_id": "G1",
		"amount":  float64(250),
		"show":    true,
		"rent":    []interface{}{float64(2), float64(10), "skipme", float64(30)},
	}

	s, ok := StringField(payload, "game_id")
	assert.True(t, ok)
	assert.Equal(t, "G1", s)
	_, ok = StringField(payload, "missing")
	assert.False(t, ok)

	n, ok := IntField(payload, "amount")
	assert.True(t, ok)
	assert.Equal(t, 250, n)
	_, ok = IntField(payload, "game_id")
	assert.False(t, ok)

	f, ok := FloatField(payload, "amount")
	assert.True(t, ok)
	assert.Equal(t, float64(250), f)

	b, ok := BoolField(payload, "show")
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, []int{2, 10, 30}, IntSliceField(payload, "rent"))
	assert.Nil(t, IntSliceField(payload, "missing"))
}
