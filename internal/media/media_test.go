package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "versioned with folder", in: "https://res.cloudinary.com/demo/image/upload/v1712/comics/cover.jpg", want: "comics/cover"},
		{name: "no version", in: "https://res.cloudinary.com/demo/image/upload/cover.png", want: "cover"},
		{name: "not an upload url", in: "https://cdn.example.com/a/b/cover.webp", want: "cover"},
		{name: "empty", in: "", want: ""},
		{name: "no extension", in: "https://res.cloudinary.com/demo/image/upload/v1/comics/cover", want: "comics/cover"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PublicIDFromURL(tt.in))
		})
	}
}

func TestNewCloudinary(t *testing.T) {
	t.Parallel()

	c, err := NewCloudinary("demo", "key", "secret", "comics")
	require.NoError(t, err)
	assert.Equal(t, "comics", c.folder)
	assert.NoError(t, c.Destroy(context.Background(), ""))
}

func TestDisabled(t *testing.T) {
	t.Parallel()

	var u Uploader = Disabled{}
	_, err := u.Upload(context.Background(), strings.NewReader("img"), "cover.jpg")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NoError(t, u.Destroy(context.Background(), "comics/cover"))
}
