package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var ErrNoProvider = errors.New("orchestrator: no remote provider configured")

const groundingSystemPrompt = `Answer strictly using only the facts present in the provided context. ` +
	`Reproduce the relevant line from the context verbatim. ` +
	`If the context does not contain an answer, reply with exactly: ` + FallbackAnswer

// Client answers a Request either extractively or via a remote generator,
// enforcing grounding on whatever the remote generator returns.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg, httpClient: http.DefaultClient}
}

// Generate implements the contract from spec.md §4.5. Its error is always
// nil: an ungrounded answer, a failed remote call, or a missing API key
// all degrade to the extractive fallback.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.cfg.Extractive || !c.remoteConfigured() {
		return extractiveAnswer(req.Topic, req.SystemContext), nil
	}

	contextBlock := strings.Join(req.SystemContext, "\n")
	raw, err := c.callRemote(ctx, contextBlock, req.Topic)
	if err != nil {
		return extractiveAnswer(req.Topic, req.SystemContext), nil
	}

	if raw == FallbackAnswer || !c.isGrounded(raw, req.SystemContext) {
		extracted := extractiveAnswer(req.Topic, req.SystemContext)
		return extracted, nil
	}

	return raw, nil
}

func (c *Client) remoteConfigured() bool {
	return c.cfg.Provider != "" || c.cfg.APIKey != ""
}

// isGrounded implements the grounding check from spec.md §4.5: after
// whitespace normalization, the answer must equal (exact mode) or appear
// as a substring of (excerpt mode) some context line.
func (c *Client) isGrounded(answer string, lines []string) bool {
	normAnswer := normalizeWhitespace(answer)

	for _, line := range lines {
		normLine := normalizeWhitespace(line)
		switch c.cfg.Grounding {
		case GroundingExact:
			if normAnswer == normLine {
				return true
			}
		default: // excerpt
			if strings.Contains(normLine, normAnswer) {
				return true
			}
		}
	}
	return false
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *Client) callRemote(ctx context.Context, contextBlock, query string) (string, error) {
	switch NormalizeProvider(c.cfg.Provider) {
	case ProviderGemini:
		return c.callGemini(ctx, contextBlock, query)
	default:
		return c.callOpenAICompatible(ctx, contextBlock, query)
	}
}

type openaiChatRequest struct {
	Model    string              `json:"model"`
	Messages []openaiChatMessage `json:"messages"`
}

type openaiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *Client) callOpenAICompatible(ctx context.Context, contextBlock, query string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNoProvider
	}

	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := c.cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	reqBody := openaiChatRequest{
		Model: model,
		Messages: []openaiChatMessage{
			{Role: "system", Content: groundingSystemPrompt + "\n\nContext:\n" + contextBlock},
			{Role: "user", Content: query},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var oaiResp openaiChatResponse
	if err := json.Unmarshal(body, &oaiResp); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("orchestrator: openai-compatible provider error (status %d): %s", resp.StatusCode, string(body))
	}
	if oaiResp.Error != nil {
		return "", fmt.Errorf("orchestrator: openai-compatible provider error: %s", oaiResp.Error.Message)
	}
	if len(oaiResp.Choices) == 0 {
		return "", fmt.Errorf("orchestrator: openai-compatible provider returned no choices")
	}

	return oaiResp.Choices[0].Message.Content, nil
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"system_instruction"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// geminiEndpoint normalizes either a fully-composed proxy URL (already
// containing the profile segment) or a base URL plus a separate profile
// id into the versioned generateContent endpoint, per spec.md §4.5.
func (c *Client) geminiEndpoint() string {
	base := c.cfg.BaseURL
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	base = strings.TrimSuffix(base, "/")

	model := c.cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	if !strings.Contains(base, "/v1") && !strings.Contains(base, "/v1beta") {
		if c.cfg.Profile != "" {
			base = base + "/v1beta/" + c.cfg.Profile
		} else {
			base = base + "/v1beta"
		}
	}

	return fmt.Sprintf("%s/models/%s:generateContent", base, model)
}

func (c *Client) callGemini(ctx context.Context, contextBlock, query string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrNoProvider
	}

	reqBody := geminiRequest{
		SystemInstruction: geminiContent{
			Parts: []geminiPart{{Text: groundingSystemPrompt + "\n\nContext:\n" + contextBlock}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: query}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.geminiEndpoint(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var gResp geminiResponse
	if err := json.Unmarshal(body, &gResp); err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("orchestrator: gemini provider error (status %d): %s", resp.StatusCode, string(body))
	}
	if gResp.Error != nil {
		return "", fmt.Errorf("orchestrator: gemini provider error: %s", gResp.Error.Message)
	}
	if len(gResp.Candidates) == 0 || len(gResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("orchestrator: gemini provider returned no candidates")
	}

	return gResp.Candidates[0].Content.Parts[0].Text, nil
}
