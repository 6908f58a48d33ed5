package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "2024/img001.jpg", want: "img001.jpg"},
		{key: "img001.jpg", want: "img001.jpg"},
		{key: "a/b/c/report.pdf", want: "report.pdf"},
		{key: "folder/", want: ""},
		{key: "/leading.txt", want: "leading.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.key))
		})
	}
}

func TestAccountFromARN(t *testing.T) {
	account, err := AccountFromARN("arn:aws:lambda:us-east-1:123456789012:function:f")
	require.NoError(t, err)
	assert.Equal(t, "123456789012", account)

	account, err = AccountFromARN("arn:aws:lambda:eu-west-1:210987654321:function:recorder:live")
	require.NoError(t, err)
	assert.Equal(t, "210987654321", account)

	_, err = AccountFromARN("")
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "unknown", Kind(assert.AnError))
}
