package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"mealmind"
)

type options struct {
	Temperature   float64 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumCtx        int     `json:"num_ctx,omitempty"`
}

// Client calls Ollama's /api/chat endpoint. One Client serves one model.
type Client struct {
	endpoint   string
	model      string
	httpClient mealmind.HTTPClient
	options    options
}

type ClientOpts struct {
	BaseEndpoint string
	ModelID      string
	HTTPClient   mealmind.HTTPClient
	Temperature  float64
	TopP         float64
}

func NewClient(opts ClientOpts) (*Client, error) {
	if opts.BaseEndpoint == "" {
		return nil, fmt.Errorf("ollama: base endpoint required")
	}
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("ollama: http client required")
	}

	return &Client{
		model:      opts.ModelID,
		httpClient: opts.HTTPClient,
		endpoint:   opts.BaseEndpoint + "/api/chat",
		options: options{
			Temperature:   opts.Temperature,
			TopP:          opts.TopP,
			RepeatPenalty: 1.05,
			NumCtx:        16384,
		},
	}, nil
}

type wireToolCall struct {
	Function struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"function"`
}

type wireMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Name      string         `json:"name,omitempty"`
	ToolCalls []wireToolCall `json:"tool_calls,omitempty"`
}

type wireResponse struct {
	Message wireMessage `json:"message"`
	// other metadata omitted but available
}

type wireRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Tools    []Tool    `json:"tools,omitempty"`
	Stream   bool      `json:"stream"`
	Options  options   `json:"options,omitempty"`
}

// Invoke sends the conversation and returns the model's reply. Whether the
// reply is tool calls or final content is the caller's decision to make.
func (c *Client) Invoke(ctx context.Context, prompt Prompt) (Response, error) {
	slog.Info("LLM_CLIENT: Invoked", "messages_len", len(prompt.Messages))

	reqBody := wireRequest{
		Model:    c.model,
		Messages: prompt.Messages,
		Tools:    prompt.Tools,
		Stream:   false,
		Options:  c.options,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(reqBytes))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("LLM_CLIENT: %s: %s", resp.Status, string(body))
	}

	var wr wireResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		slog.Warn("LLM_CLIENT: decode failed, returning raw", "err", err, "body", string(body))
		return Response{Content: string(body)}, nil
	}

	if len(wr.Message.ToolCalls) > 0 {
		tc := make([]ToolCall, 0, len(wr.Message.ToolCalls))
		for _, call := range wr.Message.ToolCalls {
			tc = append(tc, ToolCall{
				Name: call.Function.Name,
				Args: call.Function.Arguments,
			})
		}
		return Response{Content: wr.Message.Content, ToolCalls: tc}, nil
	}

	return Response{Content: wr.Message.Content}, nil
}
