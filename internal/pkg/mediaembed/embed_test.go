package mediaembed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://www.youtube.com/shorts/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{url: "https://example.com/video.mp4", want: ""},
		{url: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, YouTubeID(tt.url), tt.url)
	}
}

func TestRuTubeID(t *testing.T) {
	id := "0123456789abcdef0123456789abcdef"
	assert.Equal(t, id, RuTubeID("https://rutube.ru/video/"+id+"/"))
	assert.Equal(t, id, RuTubeID("https://rutube.ru/play/embed/"+id))
	assert.Equal(t, "", RuTubeID("https://rutube.ru/video/short/"))
}

func TestResolve(t *testing.T) {
	src, ok := Resolve("https://youtu.be/dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, KindYouTube, src.Kind)
	assert.Contains(t, src.URL, "/embed/dQw4w9WgXcQ")

	src, ok = Resolve("https://rutube.ru/video/0123456789abcdef0123456789abcdef/")
	assert.True(t, ok)
	assert.Equal(t, KindRuTube, src.Kind)

	src, ok = Resolve("https://cdn.example.com/movies/1.mp4")
	assert.True(t, ok)
	assert.Equal(t, KindFile, src.Kind)
	assert.Equal(t, "https://cdn.example.com/movies/1.mp4", src.URL)

	_, ok = Resolve("https://youtube.com/watch")
	assert.False(t, ok)
}
