package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type openaiEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openaiEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// openaiEmbed consumes the OpenAI-compatible /embeddings contract from
// spec.md §7: data[0].embedding.
func openaiEmbed(ctx context.Context, baseURL, apiKey, model, text string) ([]float32, error) {
	reqBody := openaiEmbeddingRequest{Model: model, Input: text}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var oaiResp openaiEmbeddingResponse
	if err := json.Unmarshal(body, &oaiResp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding: openai-compatible provider error (status %d): %s", resp.StatusCode, string(body))
	}
	if oaiResp.Error != nil {
		return nil, fmt.Errorf("embedding: openai-compatible provider error: %s", oaiResp.Error.Message)
	}
	if len(oaiResp.Data) == 0 {
		return nil, fmt.Errorf("embedding: openai-compatible provider returned no data")
	}

	return oaiResp.Data[0].Embedding, nil
}

type geminiEmbedRequest struct {
	Model                string             `json:"model"`
	Content              geminiEmbedContent `json:"content"`
	OutputDimensionality int                `json:"outputDimensionality,omitempty"`
}

type geminiEmbedContent struct {
	Parts []geminiEmbedPart `json:"parts"`
}

type geminiEmbedPart struct {
	Text string `json:"text"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// geminiEmbed consumes the models/<model>:embedContent contract from
// spec.md §7: embedding.values, with an explicit outputDimensionality hint.
func geminiEmbed(ctx context.Context, apiKey, model, text string, dim int) ([]float32, error) {
	reqBody := geminiEmbedRequest{
		Model:                "models/" + model,
		Content:              geminiEmbedContent{Parts: []geminiEmbedPart{{Text: text}}},
		OutputDimensionality: dim,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:embedContent", model)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var gResp geminiEmbedResponse
	if err := json.Unmarshal(body, &gResp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding: gemini provider error (status %d): %s", resp.StatusCode, string(body))
	}
	if gResp.Error != nil {
		return nil, fmt.Errorf("embedding: gemini provider error: %s", gResp.Error.Message)
	}

	return gResp.Embedding.Values, nil
}

// align truncates or zero-pads vec to exactly dim entries, per the
// mandatory alignment rule in spec.md §4.1.
func align(vec []float32, dim int) []float32 {
	if len(vec) == dim {
		return vec
	}
	out := make([]float32, dim)
	copy(out, vec)
	return out
}
