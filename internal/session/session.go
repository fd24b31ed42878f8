package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/farxc/folha-assistente/internal/llm"
	"github.com/farxc/folha-assistente/internal/payroll/utils"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

const activeWindow = time.Hour

type Message struct {
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	ToolUsed     string    `json:"tool_used,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	EmployeeIDs  []string  `json:"employee_ids,omitempty"`
	Competencies []string  `json:"competencies,omitempty"`
}

type Session struct {
	ID           string
	Messages     []Message
	CreatedAt    time.Time
	LastActivity time.Time
	// LastEmployees are the ids of the last tabular answer that resolved
	// employees; follow-up questions that name nobody reuse them.
	LastEmployees []string
}

type Summary struct {
	SessionID             string    `json:"session_id"`
	MessageCount          int       `json:"message_count"`
	CreatedAt             time.Time `json:"created_at"`
	LastActivity          time.Time `json:"last_activity"`
	ToolsUsed             []string  `json:"tools_used"`
	TopicsDiscussed       []string  `json:"topics_discussed"`
	EmployeeMentions      []string  `json:"employee_mentions"`
	CompetenciesMentioned []string  `json:"competencies_mentioned"`
	LastQueryTool         string    `json:"last_query_tool,omitempty"`
}

type Stats struct {
	TotalSessions         int `json:"total_sessions"`
	TotalMessages         int `json:"total_messages"`
	ActiveSessions        int `json:"active_sessions"`
	MaxSessions           int `json:"max_sessions"`
	MaxMessagesPerSession int `json:"max_messages_per_session"`
}

var topicTerms = []struct {
	topic string
	terms []string
}{
	{"salário", []string{"salario", "salarios"}},
	{"descontos", []string{"desconto", "descontos", "descontado"}},
	{"INSS", []string{"inss"}},
	{"IRRF", []string{"irrf"}},
	{"bônus", []string{"bonus"}},
	{"trimestre", []string{"trimestre"}},
	{"semestre", []string{"semestre"}},
	{"FGTS", []string{"fgts"}},
	{"férias", []string{"ferias"}},
}

// Memory keeps conversations in process. Sessions idle for longer than TTL
// are dropped, and past MaxSessions the least recently active go first.
type Memory struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	ttl         time.Duration
	maxSessions int
	maxMessages int
	now         func() time.Time
}

func NewMemory(ttl time.Duration, maxSessions, maxMessages int) *Memory {
	return &Memory{
		sessions:    make(map[string]*Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		maxMessages: maxMessages,
		now:         time.Now,
	}
}

// Create starts a session. An empty id gets a random UUID; an existing id
// is returned untouched.
func (m *Memory) Create(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()
	if id == "" {
		id = uuid.NewString()
	}
	if _, ok := m.sessions[id]; ok {
		return id
	}
	now := m.now()
	m.sessions[id] = &Session{ID: id, CreatedAt: now, LastActivity: now}
	m.evictLocked()
	return id
}

func (m *Memory) Exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked()
	_, ok := m.sessions[id]
	return ok
}

func (m *Memory) Add(id string, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = m.now()
	}
	s.Messages = append(s.Messages, msg)
	if m.maxMessages > 0 && len(s.Messages) > m.maxMessages {
		s.Messages = append([]Message(nil), s.Messages[len(s.Messages)-m.maxMessages:]...)
	}
	if len(msg.EmployeeIDs) > 0 && msg.Role == llm.RoleAssistant {
		s.LastEmployees = append([]string(nil), msg.EmployeeIDs...)
	}
	s.LastActivity = m.now()
	return nil
}

// History returns up to limit most recent messages as chat turns.
func (m *Memory) History(id string, limit int) []llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	msgs := s.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]llm.Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	return out
}

func (m *Memory) LastEmployees(id string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return append([]string(nil), s.LastEmployees...)
	}
	return nil
}

// Summary describes what the session has covered. names maps employee ids
// to display names.
func (m *Memory) Summary(id string, names map[string]string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Summary{}, ErrNotFound
	}
	sum := Summary{
		SessionID:    s.ID,
		MessageCount: len(s.Messages),
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
	}
	tools := map[string]struct{}{}
	topics := map[string]struct{}{}
	employees := map[string]struct{}{}
	comps := map[string]struct{}{}
	for _, msg := range s.Messages {
		if msg.ToolUsed != "" {
			tools[msg.ToolUsed] = struct{}{}
			sum.LastQueryTool = msg.ToolUsed
		}
		for _, t := range topicTerms {
			for _, term := range t.terms {
				if utils.ContainsTerm(msg.Content, term) {
					topics[t.topic] = struct{}{}
					break
				}
			}
		}
		for _, id := range msg.EmployeeIDs {
			if name, ok := names[id]; ok {
				employees[name] = struct{}{}
			} else {
				employees[id] = struct{}{}
			}
		}
		for _, c := range msg.Competencies {
			comps[c] = struct{}{}
		}
	}
	sum.ToolsUsed = sortedKeys(tools)
	sum.TopicsDiscussed = sortedKeys(topics)
	sum.EmployeeMentions = sortedKeys(employees)
	sum.CompetenciesMentioned = sortedKeys(comps)
	return sum, nil
}

func (m *Memory) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()
	st := Stats{
		TotalSessions:         len(m.sessions),
		MaxSessions:           m.maxSessions,
		MaxMessagesPerSession: m.maxMessages,
	}
	now := m.now()
	for _, s := range m.sessions {
		st.TotalMessages += len(s.Messages)
		if now.Sub(s.LastActivity) < activeWindow {
			st.ActiveSessions++
		}
	}
	return st
}

func (m *Memory) expireLocked() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for id, s := range m.sessions {
		if now.Sub(s.LastActivity) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

func (m *Memory) evictLocked() {
	if m.maxSessions <= 0 || len(m.sessions) <= m.maxSessions {
		return
	}
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastActivity.Before(all[j].LastActivity) })
	for _, s := range all[:len(all)-m.maxSessions] {
		delete(m.sessions, s.ID)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
