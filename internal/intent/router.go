package intent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/farxc/folha-assistente/internal/llm"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/payroll/aggregate"
	"github.com/farxc/folha-assistente/internal/payroll/answer"
	"github.com/farxc/folha-assistente/internal/payroll/evidence"
	"github.com/farxc/folha-assistente/internal/payroll/query"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/retrieval"
)

const DefaultTimeout = 10 * time.Second

type Retriever interface {
	Retrieve(ctx context.Context, query string) (retrieval.Result, error)
}

type Conversational interface {
	Converse(ctx context.Context, text string, history []llm.Message) (string, error)
}

type Request struct {
	Text string
	// EmployeeHint is used when the question names nobody (session follow-ups).
	EmployeeHint []string
	History      []llm.Message
}

// Answer is what the router hands back for every question.
type Answer struct {
	Text     string             `json:"response"`
	Evidence *evidence.Evidence `json:"evidence"`
	ToolUsed Tool               `json:"tool_used"`
	Reason   answer.Reason      `json:"reason"`
	// Query is the parsed form of tabular questions.
	Query *query.Query `json:"-"`
}

const (
	notReadyText       = "Os dados da folha de pagamento ainda estão sendo carregados. Tente novamente em alguns instantes."
	externalFailedText = "Desculpe, não consegui consultar fontes externas agora. Tente novamente em alguns instantes."
	generalFailedText  = "Desculpe, não consegui processar sua mensagem agora. Tente novamente em alguns instantes."
)

type Router struct {
	holder     *tabular.Holder
	vocabulary Vocabulary
	retriever  Retriever
	converser  Conversational
	timeout    time.Duration
	logger     *logger.Logger

	mu     sync.Mutex
	store  *tabular.Store
	parser *query.Parser
}

type Option func(*Router)

func WithVocabulary(v Vocabulary) Option {
	return func(r *Router) { r.vocabulary = v }
}

func WithTimeout(d time.Duration) Option {
	return func(r *Router) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewRouter(holder *tabular.Holder, retriever Retriever, converser Conversational, appLogger *logger.Logger, opts ...Option) *Router {
	r := &Router{
		holder:     holder,
		vocabulary: DefaultVocabulary(),
		retriever:  retriever,
		converser:  converser,
		timeout:    DefaultTimeout,
		logger:     appLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Classify(text string) Tool {
	return r.vocabulary.Classify(text)
}

// Answer classifies req.Text and runs the selected capability. Only a
// dataset that is not loaded yet (NotReadyError) or failed to load comes
// back as an error; everything else is a user-facing Answer.
func (r *Router) Answer(ctx context.Context, req Request) (Answer, error) {
	const component = "IntentRouter"

	tool, term := r.vocabulary.Explain(req.Text)
	r.logger.Debug(component, "Classified question: tool=%s term=%q", tool, term)

	switch tool {
	case ToolTabular:
		return r.tabular(req)
	case ToolExternal:
		return r.external(ctx, req), nil
	default:
		return r.general(ctx, req), nil
	}
}

func (r *Router) parserFor(s *tabular.Store) *query.Parser {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store != s {
		r.store = s
		r.parser = query.ForStore(s)
	}
	return r.parser
}

func (r *Router) tabular(req Request) (Answer, error) {
	const component = "IntentRouter"

	s, err := r.holder.Store()
	if err != nil {
		if errors.As(err, &tabular.NotReadyError{}) {
			return Answer{Text: notReadyText, ToolUsed: ToolTabular, Reason: answer.ReasonNotReady}, err
		}
		return Answer{}, fmt.Errorf("payroll dataset unavailable: %w", err)
	}

	q := r.parserFor(s).Parse(req.Text, req.EmployeeHint)
	writer := answer.Writer{Names: s.Employees()}
	out := Answer{ToolUsed: ToolTabular, Query: &q}

	res, err := aggregate.Execute(q, s)
	if err != nil {
		text, reason, ok := writer.Clarification(err)
		if !ok {
			r.logger.Error(component, "Tabular query failed: question=%q error=%v", req.Text, err)
			text, reason = "Não consegui consultar a folha de pagamento para essa pergunta.", answer.ReasonNoMatch
		}
		r.logger.Info(component, "Tabular clarification: reason=%s ref=%q", reason, q.EmployeeRef)
		out.Text, out.Reason = text, reason
		return out, nil
	}

	out.Text, out.Reason = writer.Result(res)
	out.Evidence = evidence.FromRecords(res.SupportingRecords)
	r.logger.Info(component, "Tabular answer: aggregation=%s metric=%s records=%d reason=%s",
		q.Aggregation, q.Metric, len(res.SupportingRecords), out.Reason)
	return out, nil
}

func (r *Router) external(ctx context.Context, req Request) Answer {
	const component = "IntentRouter"

	res, err := delegate(ctx, r.timeout, ToolExternal, func(ctx context.Context) (retrieval.Result, error) {
		return r.retriever.Retrieve(ctx, req.Text)
	})
	if err != nil {
		r.logger.Warn(component, "External retrieval degraded: error=%v", err)
		return Answer{Text: externalFailedText, ToolUsed: ToolExternal, Reason: dependencyReason(err)}
	}
	return Answer{
		Text:     res.Text,
		Evidence: evidence.FromSources(res.Sources),
		ToolUsed: ToolExternal,
		Reason:   answer.ReasonOK,
	}
}

func (r *Router) general(ctx context.Context, req Request) Answer {
	const component = "IntentRouter"

	text, err := delegate(ctx, r.timeout, ToolGeneral, func(ctx context.Context) (string, error) {
		return r.converser.Converse(ctx, req.Text, req.History)
	})
	if err != nil {
		r.logger.Warn(component, "Conversational reply degraded: error=%v", err)
		return Answer{Text: generalFailedText, ToolUsed: ToolGeneral, Reason: dependencyReason(err)}
	}
	return Answer{Text: text, ToolUsed: ToolGeneral, Reason: answer.ReasonOK}
}

func dependencyReason(err error) answer.Reason {
	var timeout *DependencyTimeoutError
	if errors.As(err, &timeout) {
		return answer.ReasonDependencyTimeout
	}
	return answer.ReasonDependencyFailure
}

type outcome[T any] struct {
	val T
	err error
}

// delegate runs fn with a deadline and stops waiting once it passes. fn gets
// the derived context and is expected to return soon after it is cancelled.
func delegate[T any](ctx context.Context, timeout time.Duration, tool Tool, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan outcome[T], 1)
	go func() {
		v, err := fn(ctx)
		ch <- outcome[T]{val: v, err: err}
	}()

	select {
	case o := <-ch:
		if o.err != nil {
			if errors.Is(o.err, context.DeadlineExceeded) {
				return zero, &DependencyTimeoutError{Tool: tool}
			}
			return zero, &DependencyFailureError{Tool: tool, Err: o.err}
		}
		return o.val, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, &DependencyTimeoutError{Tool: tool}
		}
		return zero, &DependencyFailureError{Tool: tool, Err: ctx.Err()}
	}
}
