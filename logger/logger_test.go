package logger

import (
	"testing"

	logging "github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	log := NewLogger("[test]")
	defer SetLevel("warning")

	require.NoError(t, SetLevel("debug"))
	assert.True(t, log.IsEnabledFor(logging.DEBUG))

	require.NoError(t, SetLevel("error"))
	assert.False(t, log.IsEnabledFor(logging.WARNING))

	assert.Error(t, SetLevel("loud"))
}
