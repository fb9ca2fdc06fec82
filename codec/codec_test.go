package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Size   int     `json:"size"`
	Bubble float64 `json:"bubble_ms"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	in := []row{{Size: 100, Bubble: 0.25}, {Size: 1000, Bubble: 12.5}}

	a, err := JSON{}.Marshal(in)
	require.NoError(t, err)
	b, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	var out []row
	require.NoError(t, GoJSON{}.Unmarshal(a, &out))
	assert.Equal(t, in, out)
	require.NoError(t, JSON{}.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestMustMarshal(t *testing.T) {
	assert.JSONEq(t, `{"size":1,"bubble_ms":0}`, string(MustMarshal(nil, row{Size: 1})))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
