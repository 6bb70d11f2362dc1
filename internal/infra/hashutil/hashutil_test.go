package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestJSONETag(t *testing.T) {
	first := JSONETag(zap.NewNop(), "tools", []string{"Socket Set", "Claw Hammer"})
	second := JSONETag(zap.NewNop(), "tools", []string{"Socket Set", "Claw Hammer"})
	other := JSONETag(zap.NewNop(), "tools", []string{"Claw Hammer", "Socket Set"})

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 34)
	assert.Equal(t, byte('"'), first[0])
}

func TestJSONETag_EncodeFailure(t *testing.T) {
	assert.Empty(t, JSONETag(nil, "bad", make(chan int)))
}
