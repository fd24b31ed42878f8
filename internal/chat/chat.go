package chat

import (
	"context"
	"errors"
	"time"

	"github.com/farxc/folha-assistente/internal/intent"
	"github.com/farxc/folha-assistente/internal/llm"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/metrics"
	"github.com/farxc/folha-assistente/internal/payroll/answer"
	"github.com/farxc/folha-assistente/internal/payroll/evidence"
	"github.com/farxc/folha-assistente/internal/payroll/query"
	"github.com/farxc/folha-assistente/internal/session"
	"github.com/farxc/folha-assistente/internal/store"
)

const DefaultHistoryLimit = 10

var ErrEmptyMessage = errors.New("message must not be empty")

// Answerer is the part of intent.Router the service depends on.
type Answerer interface {
	Answer(ctx context.Context, req intent.Request) (intent.Answer, error)
}

type Reply struct {
	Response  string             `json:"response"`
	Evidence  *evidence.Evidence `json:"evidence"`
	ToolUsed  intent.Tool        `json:"tool_used"`
	Reason    answer.Reason      `json:"reason"`
	SessionID string             `json:"session_id"`
}

type Service struct {
	router       Answerer
	sessions     *session.Memory
	storage      *store.Storage
	metrics      *metrics.Metrics
	logger       *logger.Logger
	historyLimit int
	now          func() time.Time
}

// NewService wires the router to conversation memory. storage and m may be
// nil: the audit trail and metrics are then skipped.
func NewService(router Answerer, sessions *session.Memory, storage *store.Storage, m *metrics.Metrics, appLogger *logger.Logger) *Service {
	return &Service{
		router:       router,
		sessions:     sessions,
		storage:      storage,
		metrics:      m,
		logger:       appLogger,
		historyLimit: DefaultHistoryLimit,
		now:          time.Now,
	}
}

func (s *Service) Sessions() *session.Memory {
	return s.sessions
}

// Ask answers message inside sessionID, creating the session when it is
// unknown or empty. A tabular.NotReadyError is returned together with a
// filled Reply so callers can still show the waiting message.
func (s *Service) Ask(ctx context.Context, sessionID, message string) (Reply, error) {
	const component = "ChatService"

	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	sessionID = s.sessions.Create(sessionID)
	req := intent.Request{
		Text:         message,
		EmployeeHint: s.sessions.LastEmployees(sessionID),
		History:      s.sessions.History(sessionID, s.historyLimit),
	}

	start := s.now()
	ans, err := s.router.Answer(ctx, req)
	elapsed := s.now().Sub(start)
	if err != nil && ans.Reason == "" {
		s.logger.Error(component, "Failed to answer: session=%s error=%v", sessionID, err)
		return Reply{SessionID: sessionID}, err
	}

	reply := Reply{
		Response:  ans.Text,
		Evidence:  ans.Evidence,
		ToolUsed:  ans.ToolUsed,
		Reason:    ans.Reason,
		SessionID: sessionID,
	}
	s.metrics.ObserveAnswer(string(ans.ToolUsed), string(ans.Reason), elapsed)
	s.logger.Info(component, "Answered: session=%s tool=%s reason=%s elapsed=%s", sessionID, ans.ToolUsed, ans.Reason, elapsed)

	s.remember(sessionID, message, ans)
	s.audit(ctx, sessionID, message, ans, elapsed)
	return reply, err
}

func (s *Service) remember(sessionID, message string, ans intent.Answer) {
	const component = "ChatService"

	now := s.now()
	user := session.Message{Role: llm.RoleUser, Content: message, Timestamp: now}
	assistant := session.Message{
		Role:         llm.RoleAssistant,
		Content:      ans.Text,
		Timestamp:    now,
		ToolUsed:     string(ans.ToolUsed),
		Reason:       string(ans.Reason),
		EmployeeIDs:  resolvedEmployees(ans),
		Competencies: competencies(ans.Evidence),
	}
	for _, msg := range []session.Message{user, assistant} {
		if err := s.sessions.Add(sessionID, msg); err != nil {
			s.logger.Warn(component, "Failed to store message: session=%s error=%v", sessionID, err)
			return
		}
	}
	s.metrics.SetSessions(s.sessions.Stats().TotalSessions)
}

func (s *Service) audit(ctx context.Context, sessionID, message string, ans intent.Answer, elapsed time.Duration) {
	const component = "ChatService"

	if s.storage == nil {
		return
	}
	row := &store.Interaction{
		SessionID:    sessionID,
		Question:     message,
		Response:     ans.Text,
		ToolUsed:     string(ans.ToolUsed),
		Reason:       string(ans.Reason),
		EvidenceKeys: store.JoinEvidence(ans.Evidence.Keys()),
		DurationMs:   elapsed.Milliseconds(),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.storage.Interactions.InsertInteraction(ctx, row); err != nil {
		s.logger.Warn(component, "Failed to record interaction: session=%s error=%v", sessionID, err)
	}
}

// resolvedEmployees prefers the cited records and falls back to the parsed
// query, so a follow-up after a no_match answer still knows who was asked.
func resolvedEmployees(ans intent.Answer) []string {
	if ans.Evidence != nil && len(ans.Evidence.EmployeeIDs) > 0 && !fleetWide(ans.Query) {
		return ans.Evidence.EmployeeIDs
	}
	if ans.Query != nil && ans.Query.Status == query.StatusResolved && !ans.Query.FleetWide {
		return ans.Query.EmployeeIDs
	}
	return nil
}

func fleetWide(q *query.Query) bool {
	return q != nil && q.FleetWide
}

func competencies(ev *evidence.Evidence) []string {
	if ev == nil {
		return nil
	}
	return ev.Competencies
}
