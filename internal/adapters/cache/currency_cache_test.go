package cache

import (
	"testing"

	"nbrates/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCurrencyCache_SetAndGet(t *testing.T) {
	c, err := NewCurrencyCache(128)
	require.NoError(t, err)
	defer c.Close()

	aud := domain.Currency{ID: 7, Code: 36, TextCode: "AUD", Name: "Australian Dollar"}

	c.Set(aud)

	got, ok := c.Get(36)
	require.True(t, ok)
	require.Equal(t, aud, got)
}

func TestCurrencyCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewCurrencyCache(64)
	require.NoError(t, err)
	defer c.Close()

	cur, ok := c.Get(978)
	require.False(t, ok)
	require.Equal(t, domain.Currency{}, cur)
}

func TestCurrencyCache_SetOverwritesSameCode(t *testing.T) {
	c, err := NewCurrencyCache(64)
	require.NoError(t, err)
	defer c.Close()

	c.Set(domain.Currency{ID: 1, Code: 36, TextCode: "AUD"})
	c.Set(domain.Currency{ID: 1, Code: 36, TextCode: "AUD", Name: "Australian Dollar"})

	got, ok := c.Get(36)
	require.True(t, ok)
	require.Equal(t, "Australian Dollar", got.Name)
}
