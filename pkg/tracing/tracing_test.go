package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutEndpoint(t *testing.T) {
	hooks, err := Init(context.Background(), Config{ServiceName: "recorder"})
	require.NoError(t, err)

	assert.NoError(t, hooks.Flush(context.Background()))
	assert.NoError(t, hooks.Shutdown(context.Background()))
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "single", raw: "service.namespace=mediaflow", want: map[string]string{"service.namespace": "mediaflow"}},
		{
			name: "spaces and junk",
			raw:  " a = 1 , broken, ,b=x=y",
			want: map[string]string{"a": "1", "b": "x=y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAttributes(tt.raw))
		})
	}
}
