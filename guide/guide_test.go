package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	index, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, index, "# concord")

	search, err := Get("Search")
	require.NoError(t, err)
	assert.Contains(t, search, "AND")

	_, err = Get("missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	topics, err := List()
	require.NoError(t, err)
	assert.Contains(t, topics, "search")
	assert.Contains(t, topics, "reference")
	assert.NotContains(t, topics, "guide")

	for _, topic := range topics {
		_, err := Get(topic)
		assert.NoError(t, err, topic)
	}
}
