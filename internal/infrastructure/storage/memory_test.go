package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatementStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStatementStore()

	t.Run("stores and retrieves a document", func(t *testing.T) {
		require.NoError(t, store.Store(ctx, "statements/2025/12/sales/vendas.pdf", []byte("conteudo"), "application/pdf"))

		content, ok := store.Get("statements/2025/12/sales/vendas.pdf")
		require.True(t, ok)
		assert.Equal(t, []byte("conteudo"), content)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("stored copy is independent of the caller's buffer", func(t *testing.T) {
		original := []byte("primeira")
		require.NoError(t, store.Store(ctx, "doc", original, "text/plain"))
		original[0] = 'X'

		content, ok := store.Get("doc")
		require.True(t, ok)
		assert.Equal(t, []byte("primeira"), content)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		assert.Error(t, store.Store(ctx, "", []byte("x"), "text/plain"))
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := store.Get("nope")
		assert.False(t, ok)
	})
}
