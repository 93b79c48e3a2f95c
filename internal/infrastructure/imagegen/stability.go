package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

const defaultStabilityURL = "https://api.stability.ai/v2beta/stable-image/generate/sd3"

// StabilityClient proxies text prompts to the Stable Diffusion HTTP API and
// returns the decoded image bytes.
type StabilityClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewStabilityClient(apiKey string, httpClient *http.Client) *StabilityClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &StabilityClient{baseURL: defaultStabilityURL, apiKey: apiKey, http: httpClient}
}

// WithBaseURL points the client at a different endpoint. Tests use it to
// target a local server.
func (c *StabilityClient) WithBaseURL(url string) *StabilityClient {
	c.baseURL = url
	return c
}

type stabilityResponse struct {
	Image string `json:"image"`
}

// GenerateImage sends the prompt and returns the raw image bytes the API
// produced.
func (c *StabilityClient) GenerateImage(ctx context.Context, prompt, aspectRatio, outputFormat string) ([]byte, error) {
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}
	if outputFormat == "" {
		outputFormat = "jpeg"
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"prompt":        prompt,
		"aspect_ratio":  aspectRatio,
		"output_format": outputFormat,
	} {
		if err := w.WriteField(field, value); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stable diffusion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("stable diffusion API status %d: %s", resp.StatusCode, msg)
	}

	var parsed stabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode stable diffusion response: %w", err)
	}
	if parsed.Image == "" {
		return nil, fmt.Errorf("stable diffusion response carried no image data")
	}

	img, err := base64.StdEncoding.DecodeString(parsed.Image)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return img, nil
}
