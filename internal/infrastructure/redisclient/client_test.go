//go:build unit
// +build unit

package redisclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/testutil"
)

func TestNewReturnsNilWhenDisabled(t *testing.T) {
	client, err := New(&config.RedisSettings{URL: ""}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRejectsMalformedURL(t *testing.T) {
	client, err := New(&config.RedisSettings{URL: "://not-a-url"}, testutil.SetupTestLogger(t))
	assert.Error(t, err)
	assert.Nil(t, client)
}
