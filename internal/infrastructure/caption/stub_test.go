package caption

import (
	"context"
	"testing"

	"ai-forms/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStub_ReturnsFixedCaption(t *testing.T) {
	stub := NewStub("A quiet forest.")

	got, err := stub.Caption(context.Background(), entity.Image{Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "A quiet forest.", got)
}

func TestStub_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStub("x").Caption(ctx, entity.Image{})
	assert.ErrorIs(t, err, context.Canceled)
}
