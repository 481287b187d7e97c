package affinity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mural/internal/metrics"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const defaultModel = "gpt-4o-mini"

// Config holds the OpenAI oracle settings. The API key is injected here —
// never read from process environment — so the unconfigured branch is
// testable without process-level mutation.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for compatible gateways
	// RateRPS/RateBurst bound outbound query volume across concurrent
	// ranking requests. Zero values disable the limiter.
	RateRPS   float64
	RateBurst int
}

// Configured reports whether the config can produce a working oracle.
func (c Config) Configured() bool { return strings.TrimSpace(c.APIKey) != "" }

// OpenAIOracle implements Oracle with the OpenAI chat completions API.
type OpenAIOracle struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAI creates an oracle from config. Returns nil when no API key is
// configured; a nil oracle tells the reels scorer to stay neutral without
// issuing any calls.
func NewOpenAI(cfg Config) *OpenAIOracle {
	if !cfg.Configured() {
		return nil
	}
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	var limiter *rate.Limiter
	if cfg.RateRPS > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateRPS), burst)
	}
	return &OpenAIOracle{client: c, model: model, limiter: limiter}
}

// Query asks the model to score contentText against profileText. The caller
// owns the deadline; a default guard applies when none is set.
func (o *OpenAIOracle) Query(ctx context.Context, contentText, profileText string) (int, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return 0, err
		}
	}
	metrics.AffinityQueries.Inc()
	start := time.Now()
	out, err := o.create(ctx, contentText, profileText)
	metrics.AffinityDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AffinityFailures.Inc()
		return 0, err
	}
	score, err := ParseScore(out)
	if err != nil {
		metrics.AffinityFailures.Inc()
		return 0, err
	}
	return score, nil
}

func (o *OpenAIOracle) create(ctx context.Context, contentText, profileText string) (string, error) {
	// Keep prompts small: content and profile are trimmed hard since a
	// single digit comes back.
	sys := fmt.Sprintf(`You rate how well a piece of content matches a user's stated interests.
Reply with a single integer from %d (no match) to %d (perfect match). No other text.`, MinScore, MaxScore)
	user := fmt.Sprintf("User interests: %s\nContent: %s", trimRunes(profileText, 500), trimRunes(contentText, 1000))
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
		MaxTokens:   4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty oracle completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func trimRunes(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
