package misc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 1, Min(2, 1))
	assert.Equal(t, 1.5, Min(1.5, 1.5))
	assert.Equal(t, "a", Min("a", "b"))
}

func TestStringLimit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny limit hard-cuts", "hello", 2, "he"},
		{"negative limit empty", "hello", -1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StringLimit(tt.in, tt.n))
		})
	}
}

func TestBytesLimit(t *testing.T) {
	assert.Equal(t, []byte("hello"), BytesLimit([]byte("hello"), 10))
	assert.Equal(t, []byte("hello..."), BytesLimit([]byte("hello world"), 8))
	assert.Nil(t, BytesLimit([]byte("hello"), -1))
}

func TestExtraSpaceRegex(t *testing.T) {
	assert.Equal(t, "a b c", ExtraSpaceRegex.ReplaceAllString("a \t b\n\nc", " "))
}
