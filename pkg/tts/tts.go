// Package tts is a thin wrapper around the ElevenLabs text-to-speech API.
// It carries no interview logic; the voice provider setting decides whether
// the endpoint is served at all.
package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

type Client struct {
	http    *resty.Client
	apiKey  string
	voiceID string
}

type Config struct {
	APIKey  string
	VoiceID string
}

func NewClient(cfg Config) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(elevenLabsBaseURL).
			SetTimeout(30 * time.Second),
		apiKey:  cfg.APIKey,
		voiceID: cfg.VoiceID,
	}
}

// Synthesize returns MP3 audio for the given text.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("xi-api-key", c.apiKey).
		SetHeader("Accept", "audio/mpeg").
		SetBody(map[string]interface{}{
			"text":     text,
			"model_id": "eleven_monolingual_v1",
			"voice_settings": map[string]float64{
				"stability":        0.5,
				"similarity_boost": 0.5,
			},
		}).
		Post(fmt.Sprintf("/text-to-speech/%s", c.voiceID))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("elevenlabs returned status %d", resp.StatusCode())
	}

	return resp.Body(), nil
}
