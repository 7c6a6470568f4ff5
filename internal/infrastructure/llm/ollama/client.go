package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/resume-screener/internal/core/domain"
	"github.com/kirillkom/resume-screener/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithExecutor(exec *resilience.Executor) Option {
	return func(c *Client) { c.executor = exec }
}

func New(baseURL, embedModel string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.executor == nil {
		c.executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return c
}

// Ping checks that the server answers and the embedding model is pulled.
func (c *Client) Ping(ctx context.Context) error {
	var response struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := c.getJSON(ctx, "/api/tags", &response, "tags"); err != nil {
		return wrapTemporaryIfNeeded("ollama ping", err)
	}
	for _, m := range response.Models {
		if m.Name == c.embedModel || strings.TrimSuffix(m.Name, ":latest") == c.embedModel {
			return nil
		}
	}
	return domain.WrapError(domain.ErrConfig, "ollama ping", fmt.Errorf("embedding model %q is not available", c.embedModel))
}

// Embedder batches texts into /api/embed calls.
type Embedder struct {
	client    *Client
	batchSize int
}

func NewEmbedder(client *Client, batchSize int) *Embedder {
	if batchSize <= 0 {
		batchSize = 64
	}
	return &Embedder{client: client, batchSize: batchSize}
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		vectors, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("empty embedding result")
	}
	return vectors[0], nil
}

func (e *Embedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	request := map[string]any{
		"model": e.client.embedModel,
		"input": batch,
	}

	vectors, err := resilience.Call(ctx, e.client.executor, "ollama.embed", func(callCtx context.Context) ([][]float32, error) {
		var response struct {
			Embeddings [][]float32 `json:"embeddings"`
		}
		if err := e.client.postJSON(callCtx, "/api/embed", request, &response, "embed"); err != nil {
			return nil, err
		}
		return response.Embeddings, nil
	}, classifyOllamaError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("ollama embed", err)
	}
	if len(vectors) != len(batch) {
		return nil, fmt.Errorf("ollama embed: vectors/inputs mismatch: %d/%d", len(vectors), len(batch))
	}
	return vectors, nil
}
