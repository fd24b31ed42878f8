package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	DefaultModel = "gpt-4o-mini"
	temperature  = 0.1
	maxTokens    = 800
)

const systemPrompt = `Você é um assistente especializado em folha de pagamento de uma empresa brasileira.
Responda em português, de forma breve e cordial.
Dados de funcionários e valores da folha são consultados por outra ferramenta; nunca invente valores, nomes ou datas.
Para dúvidas sobre legislação trabalhista, oriente o usuário a perguntar citando o tema (CLT, FGTS, INSS, férias).`

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var ErrEmptyCompletion = errors.New("completion returned no choices")

type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	RequestsPerMinute int
}

// Client answers small talk through the OpenAI chat completion API. Calls
// wait on a token bucket so bursts stay under the account rate limit.
type Client struct {
	api     *openai.Client
	model   string
	limiter *rate.Limiter
	logger  *logger.Logger
}

func NewClient(cfg Config, appLogger *logger.Logger) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60)
		burst = max(1, cfg.RequestsPerMinute/10)
	}
	return &Client{
		api:     openai.NewClientWithConfig(oc),
		model:   model,
		limiter: rate.NewLimiter(limit, burst),
		logger:  appLogger,
	}
}

func (c *Client) Converse(ctx context.Context, text string, history []Message) (string, error) {
	const component = "LLM"

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text})

	c.logger.Debug(component, "Requesting completion: model=%s messages=%d", c.model, len(messages))
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		c.logger.Error(component, "Completion failed: model=%s error=%v", c.model, err)
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	c.logger.Debug(component, "Completion received: finish_reason=%s", resp.Choices[0].FinishReason)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
