package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/smarttest/smarttest/inspector/graph"
)

const generateEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// Client calls a Gemini-style generateContent endpoint to produce complete
// test bodies. Any failure is reported to the caller, which falls back to
// a skeleton; generation never aborts a run.
type Client struct {
	apiKey     string
	model      string
	framework  string
	httpClient *http.Client
}

// NewClient creates an LLM client for the given model and test framework.
func NewClient(apiKey, model, framework string) *Client {
	return &Client{
		apiKey:    apiKey,
		model:     model,
		framework: framework,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateTest asks the model for a complete test for the function and
// returns the extracted Python source.
func (c *Client) GenerateTest(ctx context.Context, fn *graph.Function) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing API key for model %s", c.model)
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: c.prompt(fn)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	url := fmt.Sprintf(generateEndpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call model %s: %w", c.model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read model response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("model %s returned error: %s", c.model, decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model %s returned status %d", c.model, resp.StatusCode)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model %s returned no candidates", c.model)
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	code := extractCode(text)
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("model %s returned empty test body", c.model)
	}
	return code, nil
}

// prompt builds the generation prompt from the extracted record: the
// source of the unit under test plus framework and naming constraints.
func (c *Client) prompt(fn *graph.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s test for the following Python function.\n", c.framework)
	fmt.Fprintf(&b, "The test function must be named %s.\n", fn.TestName())
	if fn.IsMethod() {
		fmt.Fprintf(&b, "The function is a method of class %s.\n", fn.ClassName)
	}
	if fn.Docstring != "" {
		fmt.Fprintf(&b, "Documented behavior: %s\n", fn.Docstring)
	}
	fmt.Fprintf(&b, "Module path: %s\n\n", ModulePath(fn.ModuleRel))
	b.WriteString("Respond with Python code only, no explanation.\n\n")
	b.WriteString(fn.Source)
	return b.String()
}

// extractCode strips a surrounding markdown code fence when present.
func extractCode(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```python")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
