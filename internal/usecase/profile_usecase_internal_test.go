package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffectedUsernames(t *testing.T) {
	// A fresh claim touches one key, a rename touches both.
	assert.Equal(t, []string{"alice"}, affectedUsernames("", "alice"))
	assert.Equal(t, []string{"alice"}, affectedUsernames("alice", "alice"))
	assert.Equal(t, []string{"alice", "bob"}, affectedUsernames("alice", "bob"))
}
