// Package genai wraps the Gemini text-completion API behind a small
// interface so the assist service can be tested against fakes.
package genai

import (
	"context"

	"github.com/smallbiznis/billora/internal/config"
	"go.uber.org/zap"
	googlegenai "google.golang.org/genai"
)

// CompleteOptions tunes a single completion request. A nil Temperature
// leaves the model default in place.
type CompleteOptions struct {
	Temperature     *float32
	MaxOutputTokens int32
}

// Completer issues exactly one text-completion attempt per call. No retries:
// callers decide what a failure means.
type Completer interface {
	Complete(ctx context.Context, model, prompt string, opts CompleteOptions) (string, error)
}

type Client struct {
	client *googlegenai.Client
	log    *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) (Completer, error) {
	client, err := googlegenai.NewClient(context.Background(), &googlegenai.ClientConfig{
		APIKey:      cfg.GenAIAPIKey,
		Backend:     googlegenai.BackendGeminiAPI,
		HTTPOptions: googlegenai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		log:    log.Named("assist.genai"),
	}, nil
}

func (c *Client) Complete(ctx context.Context, model, prompt string, opts CompleteOptions) (string, error) {
	genCfg := &googlegenai.GenerateContentConfig{}
	if opts.Temperature != nil {
		genCfg.Temperature = opts.Temperature
	}
	if opts.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = opts.MaxOutputTokens
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, googlegenai.Text(prompt), genCfg)
	if err != nil {
		c.log.Warn("completion failed", zap.String("model", model), zap.Error(err))
		return "", err
	}

	return resp.Text(), nil
}
