package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const defaultWhisperURL = "https://api.lemonfox.ai/v1/audio/transcriptions"

// WhisperClient turns an uploaded audio clip into the text prompt used for
// image generation, via a Whisper-compatible transcription API.
type WhisperClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewWhisperClient(apiKey string, httpClient *http.Client) *WhisperClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WhisperClient{baseURL: defaultWhisperURL, apiKey: apiKey, http: httpClient}
}

func (c *WhisperClient) WithBaseURL(url string) *WhisperClient {
	c.baseURL = url
	return c
}

type whisperResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio and returns the translated transcript.
func (c *WhisperClient) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	for field, value := range map[string]string{
		"language":        "arabic",
		"response_format": "json",
		"translate":       "true",
	} {
		if err := w.WriteField(field, value); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("transcription API status %d: %s", resp.StatusCode, msg)
	}

	var parsed whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", fmt.Errorf("transcription produced no text")
	}
	return text, nil
}
