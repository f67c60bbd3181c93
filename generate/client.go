// Package generate talks to the content-generation backend. A layout's
// compiled schema document becomes the response schema of a generation call,
// after the envelope adjusts the well-known top-level fields, and the reply
// is split back into slide content and the speaker note.
package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
)

var (
	ErrUnexpectedResponse = errors.New("unexpected response code")
	ErrMissingContent     = errors.New("generation reply has no content")
)

// Client calls the generation backend over HTTP.
type Client struct {
	APIKey string
	Server string
	Model  string
}

func NewClient(apikey, server, model string) (*Client, error) {
	if server == "" {
		return nil, errors.New("generation server is empty")
	}
	client := &Client{
		APIKey: apikey,
		Server: server,
		Model:  model,
	}
	return client, nil
}

// Reply is one generation result: the structured content conforming to the
// layout schema, with the speaker note already split out of it.
type Reply struct {
	Content     []byte
	SpeakerNote string
}

type generateRequest struct {
	Model          string           `json:"model"`
	Prompt         string           `json:"prompt"`
	ResponseSchema *openapi3.Schema `json:"responseSchema"`
}

// Generate asks the backend for content matching the layout schema. The
// schema passes through ResponseSchema on the way out; the reply passes
// through SplitReply on the way back.
func (c *Client) Generate(ctx context.Context, prompt string, schema *openapi3.Schema) (*Reply, error) {
	u := c.formatURL("/api/v1/content/generate")

	bs, err := json.Marshal(&generateRequest{
		Model:          c.Model,
		Prompt:         prompt,
		ResponseSchema: ResponseSchema(schema),
	})
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(bs))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))

	client := http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, ErrUnexpectedResponse
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return SplitReply(body)
}

func (c *Client) formatURL(path string) string {
	return fmt.Sprintf("%s%s", c.Server, path)
}
