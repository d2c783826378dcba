package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "c0ffee")

	assert.Equal(t, "c0ffee", CorrelationID(ctx))
	assert.Equal(t, "", CorrelationID(context.Background()))
}
