package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	const (
		publicDomain = "https://cdn.desk.local"
		apiEndpoint  = "https://s3.desk.local"
		bucket       = "photos"
	)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public url", url: "https://cdn.desk.local/member/a.png", want: "member/a.png"},
		{name: "path style api url", url: "https://s3.desk.local/photos/member/a.png", want: "member/a.png"},
		{name: "foreign host", url: "https://elsewhere/member/a.png", want: ""},
		{name: "bare domain", url: "https://cdn.desk.local/", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectKeyFromURL(tt.url, publicDomain, apiEndpoint, bucket))
		})
	}
}

func TestObjectKeyFromURL_RoundTrip(t *testing.T) {
	url := publicURL("https://cdn.desk.local/", "member/b.jpg")

	assert.Equal(t, "https://cdn.desk.local/member/b.jpg", url)
	assert.Equal(t, "member/b.jpg", objectKeyFromURL(url, "https://cdn.desk.local", "", "photos"))
}

func TestDetectContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n" + string(make([]byte, 600)))
	jpeg := []byte("\xff\xd8\xff\xe0" + string(make([]byte, 16)))

	assert.Equal(t, "image/png", detectContentType(png))
	assert.Equal(t, "image/jpeg", detectContentType(jpeg))
	assert.Equal(t, "text/plain; charset=utf-8", detectContentType([]byte("not a photo")))
}
