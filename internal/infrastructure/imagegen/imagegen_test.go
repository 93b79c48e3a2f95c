package imagegen

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a tiger in a suit", r.FormValue("prompt"))
		assert.Equal(t, "1:1", r.FormValue("aspect_ratio"))

		payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"image":"` + payload + `"}`))
	}))
	defer srv.Close()

	client := NewStabilityClient("sk-test", srv.Client()).WithBaseURL(srv.URL)
	img, err := client.GenerateImage(context.Background(), "a tiger in a suit", "", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), img)
}

func TestGenerateImageUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := NewStabilityClient("sk-test", srv.Client()).WithBaseURL(srv.URL)
	_, err := client.GenerateImage(context.Background(), "anything", "", "")
	assert.ErrorContains(t, err, "status 402")
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "true", r.FormValue("translate"))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "prompt.mp3", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"  a skyline at dusk  "}`))
	}))
	defer srv.Close()

	client := NewWhisperClient("sk-test", srv.Client()).WithBaseURL(srv.URL)
	text, err := client.Transcribe(context.Background(), "prompt.mp3", []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, "a skyline at dusk", text)
}

func TestTranscribeEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	client := NewWhisperClient("sk-test", srv.Client()).WithBaseURL(srv.URL)
	_, err := client.Transcribe(context.Background(), "prompt.mp3", []byte("audio"))
	assert.ErrorContains(t, err, "no text")
}
