package chat

import (
	"time"

	"github.com/farxc/folha-assistente/internal/intent"
	"github.com/farxc/folha-assistente/internal/llm"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/retrieval"
)

type RouterConfig struct {
	OpenAIKey            string
	OpenAIModel          string
	LLMRequestsPerMinute int
	GoogleAPIKey         string
	GoogleEngineID       string
	DependencyTimeout    time.Duration
	VocabularyFile       string
}

// NewRouter picks the live collaborators when their credentials are set and
// the offline ones otherwise.
func NewRouter(holder *tabular.Holder, cfg RouterConfig, appLogger *logger.Logger) (*intent.Router, error) {
	const component = "ChatService"

	opts := []intent.Option{intent.WithTimeout(cfg.DependencyTimeout)}
	if cfg.VocabularyFile != "" {
		vocab, err := intent.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return nil, err
		}
		appLogger.Info(component, "Loaded intent vocabulary: file=%s tabular=%d external=%d",
			cfg.VocabularyFile, len(vocab.Tabular), len(vocab.External))
		opts = append(opts, intent.WithVocabulary(vocab))
	}

	var retriever intent.Retriever = retrieval.Curated{}
	if cfg.GoogleAPIKey != "" && cfg.GoogleEngineID != "" {
		retriever = retrieval.NewGoogle(cfg.GoogleAPIKey, cfg.GoogleEngineID, appLogger)
	} else {
		appLogger.Warn(component, "Google search not configured, using curated sources")
	}

	var converser intent.Conversational = llm.Offline{}
	if cfg.OpenAIKey != "" {
		converser = llm.NewClient(llm.Config{
			APIKey:            cfg.OpenAIKey,
			Model:             cfg.OpenAIModel,
			RequestsPerMinute: cfg.LLMRequestsPerMinute,
		}, appLogger)
	} else {
		appLogger.Warn(component, "OPENAI_API_KEY not set, using offline replies")
	}

	return intent.NewRouter(holder, retriever, converser, appLogger, opts...), nil
}
