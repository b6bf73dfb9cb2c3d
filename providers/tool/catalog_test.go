package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddGetCaseInsensitive(t *testing.T) {
	c := NewCatalog(newDoubleTool())

	assert.Equal(t, 1, c.Size())
	assert.True(t, c.Has("double"))
	assert.True(t, c.Has("DOUBLE"))

	got, ok := c.Get("Double")
	require.True(t, ok)
	assert.Equal(t, "Double", got.ToolInfo().Name)
}

func TestCatalog_ReplaceAndRemove(t *testing.T) {
	c := NewCatalog()
	c.AddTools(newDoubleTool(), newDoubleTool())
	assert.Equal(t, 1, c.Size(), "same name should replace")

	assert.True(t, c.Remove("double"))
	assert.False(t, c.Remove("double"))
	assert.Equal(t, 0, c.Size())
}

func TestCatalog_Names(t *testing.T) {
	other := NewTool("Alpha", func(ctx context.Context, in doubleInput) (doubleOutput, error) {
		return doubleOutput{Result: in.Value}, nil
	})
	c := NewCatalog(newDoubleTool(), other)

	assert.Equal(t, []string{"alpha", "double"}, c.Names())
}

func TestCatalog_Call(t *testing.T) {
	c := NewCatalog(newDoubleTool())

	out, err := c.Call(context.Background(), "double", `{"value": 4}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": 8}`, out)

	_, err = c.Call(context.Background(), "missing", `{}`)
	assert.ErrorIs(t, err, ErrToolNotFound)
}
