package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	id, kind, err := PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1712345678/Athar/posts/abc-123.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Athar/posts/abc-123", id)
	assert.Equal(t, KindImage, kind)

	id, kind, err = PublicIDFromURL("https://res.cloudinary.com/demo/video/upload/q_auto:low,f_auto/v99/Athar/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, "Athar/clip", id)
	assert.Equal(t, KindVideo, kind)

	_, _, err = PublicIDFromURL("https://example.com/a.jpg")
	assert.ErrorIs(t, err, ErrNotCloudinaryURL)
}
