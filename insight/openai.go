package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	openai "github.com/sashabaranov/go-openai"
	"github.com/securecorp/secreport/config"
	"github.com/securecorp/secreport/model"
)

// OpenAIProvider generates the report narrative via the OpenAI chat API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewOpenAIProvider builds a provider from the app configuration. Returns nil
// when no API key is configured; a nil provider means placeholder content.
func NewOpenAIProvider(cfg config.AppConfig) *OpenAIProvider {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}
	return &OpenAIProvider{
		client:      openai.NewClient(cfg.OpenAIAPIKey),
		model:       cfg.OpenAIModel,
		maxTokens:   cfg.OpenAIMaxTokens,
		temperature: cfg.OpenAITemperature,
		timeout:     cfg.InsightTimeout,
	}
}

// chat performs one chat completion with a bounded retry.
func (p *OpenAIProvider) chat(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	var content string

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	operation := func() error {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx))
	if err != nil {
		return "", err
	}
	return content, nil
}

// Generate produces the executive summary, key findings and recommendations.
// The whole call is bounded by the configured timeout; any failure is
// reported as enrichment-unavailable so the caller can substitute
// placeholders.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (model.InsightContent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	summary, err := p.executiveSummary(ctx, req)
	if err != nil {
		return model.InsightContent{}, fmt.Errorf("%w: %v", model.ErrEnrichmentUnavailable, err)
	}

	findings, err := p.keyFindings(ctx, req)
	if err != nil {
		return model.InsightContent{}, fmt.Errorf("%w: %v", model.ErrEnrichmentUnavailable, err)
	}

	recommendations, err := p.recommendations(ctx, req)
	if err != nil {
		return model.InsightContent{}, fmt.Errorf("%w: %v", model.ErrEnrichmentUnavailable, err)
	}

	return model.InsightContent{
		ExecutiveSummary: summary,
		KeyFindings:      findings,
		Recommendations:  recommendations,
	}, nil
}

func (p *OpenAIProvider) executiveSummary(ctx context.Context, req Request) (string, error) {
	prompt := fmt.Sprintf(`You are a cybersecurity expert writing an executive summary for a %s covering the %s period%s.

Based on the following security metrics and data:
%s

Write a professional, executive-level summary (2-3 paragraphs) that:
1. Highlights the overall security posture and key findings
2. Identifies the most critical risks and concerns
3. Notes any positive trends or improvements
4. Uses business-friendly language appropriate for C-level executives
5. Focuses on actionable insights rather than technical details

Keep the tone professional, confident, and solution-oriented. Avoid technical jargon.`,
		req.ReportTitle, req.Period, focusContext(req.FocusAreas), req.Summary)

	if req.Questions != "" {
		prompt += fmt.Sprintf("\n\nAlso address these questions from the requester: %s", req.Questions)
	}

	return p.chat(ctx,
		"You are a senior cybersecurity consultant writing executive reports.",
		prompt, p.maxTokens/8, p.temperature)
}

func (p *OpenAIProvider) keyFindings(ctx context.Context, req Request) ([]string, error) {
	prompt := fmt.Sprintf(`Based on the following security metrics for a %s:
%s

Generate 3-5 key findings that would be most important for executives to know.
Each finding should be:
- One clear, concise sentence
- Focused on business impact or risk
- Actionable or decision-relevant

Format as a JSON array of strings.`, req.ReportTitle, req.Summary)

	content, err := p.chat(ctx,
		"You are a cybersecurity expert identifying key findings for executives.",
		prompt, 400, 0.5)
	if err != nil {
		return nil, err
	}
	return parseList(content, 5), nil
}

func (p *OpenAIProvider) recommendations(ctx context.Context, req Request) ([]string, error) {
	focus := ""
	if len(req.FocusAreas) > 0 {
		focus = fmt.Sprintf("\nPay special attention to %s.", strings.Join(req.FocusAreas, ", "))
	}

	prompt := fmt.Sprintf(`Based on the following security metrics:
%s
%s
Generate 3-4 specific, actionable recommendations for improving the organization's security posture.
Each recommendation should be:
- Specific and actionable
- Prioritized based on risk and impact
- Feasible for implementation
- Focused on addressing identified gaps or risks

Format as a JSON array of strings.`, req.Summary, focus)

	content, err := p.chat(ctx,
		"You are a cybersecurity consultant providing strategic recommendations.",
		prompt, 400, 0.6)
	if err != nil {
		return nil, err
	}
	return parseList(content, 4), nil
}

// tryJSONList attempts to decode content as a JSON string array.
func tryJSONList(content string) ([]string, bool) {
	var items []string
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, false
	}
	return items, true
}
