package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeUnreachable(t *testing.T) {
	// Nothing listens on port 1; the post-connect ping must fail and
	// leave no client behind.
	err := Initialize(Config{URL: "redis://127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, Client())
	assert.NoError(t, Close())
}
