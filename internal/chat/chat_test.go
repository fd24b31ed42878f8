package chat

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/farxc/folha-assistente/internal/intent"
	"github.com/farxc/folha-assistente/internal/llm"
	"github.com/farxc/folha-assistente/internal/logger"
	"github.com/farxc/folha-assistente/internal/metrics"
	"github.com/farxc/folha-assistente/internal/payroll/answer"
	"github.com/farxc/folha-assistente/internal/payroll/payrolltest"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/retrieval"
	"github.com/farxc/folha-assistente/internal/session"
	"github.com/farxc/folha-assistente/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newStorage(t *testing.T) *store.Storage {
	t.Helper()
	raw, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	db := sqlx.NewDb(raw, "sqlite3")
	t.Cleanup(func() { db.Close() })

	s := store.NewStorage(db)
	require.NoError(t, s.Interactions.EnsureSchema(context.Background()))
	return s
}

func newService(t *testing.T, holder *tabular.Holder, storage *store.Storage, reg prometheus.Registerer) *Service {
	t.Helper()
	router := intent.NewRouter(holder, retrieval.Curated{}, llm.Offline{}, logger.NewNop())
	return NewService(router, session.NewMemory(0, 10, 50), storage, metrics.New(reg), logger.NewNop())
}

func TestAsk_TabularAnswerIsRememberedAndAudited(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)
	reg := prometheus.NewRegistry()
	svc := newService(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), storage, reg)

	reply, err := svc.Ask(ctx, "", "Qual o salário líquido da Ana Souza em maio/2025?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, intent.ToolTabular, reply.ToolUsed)
	assert.Equal(t, answer.ReasonOK, reply.Reason)
	assert.Contains(t, reply.Response, "R$ 8.418,75")
	require.NotNil(t, reply.Evidence)
	assert.Equal(t, []string{"E001|2025-05"}, reply.Evidence.Keys())

	assert.Equal(t, []string{"E001"}, svc.Sessions().LastEmployees(reply.SessionID))
	history := svc.Sessions().History(reply.SessionID, 0)
	require.Len(t, history, 2)
	assert.Equal(t, llm.RoleUser, history[0].Role)
	assert.Equal(t, llm.RoleAssistant, history[1].Role)

	rows, err := storage.Interactions.GetLatest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reply.SessionID, rows[0].SessionID)
	assert.Equal(t, "tabular", rows[0].ToolUsed)
	assert.Equal(t, []string{"E001|2025-05"}, rows[0].Evidence())

	n, err := testutil.GatherAndCount(reg, "payroll_answers_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAsk_FollowUpUsesPreviousEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), nil, prometheus.NewRegistry())

	first, err := svc.Ask(ctx, "s1", "Qual o salário líquido do Bruno Lima em maio/2025?")
	require.NoError(t, err)
	assert.Equal(t, "s1", first.SessionID)

	second, err := svc.Ask(ctx, "s1", "E o salário líquido de junho/2025?")
	require.NoError(t, err)
	assert.Equal(t, answer.ReasonOK, second.Reason)
	assert.Contains(t, second.Response, "Bruno Lima")
	assert.Contains(t, second.Response, "R$ 5.550,00")

	// A fresh session has no one to fall back on.
	other, err := svc.Ask(ctx, "s2", "E o salário líquido de junho/2025?")
	require.NoError(t, err)
	assert.Equal(t, answer.ReasonUnresolvable, other.Reason)
}

func TestAsk_GeneralAndExternal(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, tabular.Ready(payrolltest.Load(t, payrolltest.Standard)), nil, prometheus.NewRegistry())

	reply, err := svc.Ask(ctx, "", "Olá, tudo bem?")
	require.NoError(t, err)
	assert.Equal(t, intent.ToolGeneral, reply.ToolUsed)
	assert.Nil(t, reply.Evidence)

	reply, err = svc.Ask(ctx, reply.SessionID, "Qual é o valor do FGTS?")
	require.NoError(t, err)
	assert.Equal(t, intent.ToolExternal, reply.ToolUsed)
	require.NotNil(t, reply.Evidence)
	assert.NotEmpty(t, reply.Evidence.Sources)
	assert.Empty(t, svc.Sessions().LastEmployees(reply.SessionID))
}

func TestAsk_NotReady(t *testing.T) {
	svc := newService(t, tabular.NewHolder(), nil, prometheus.NewRegistry())

	reply, err := svc.Ask(context.Background(), "", "Quantos funcionários temos?")
	assert.ErrorAs(t, err, &tabular.NotReadyError{})
	assert.Equal(t, answer.ReasonNotReady, reply.Reason)
	assert.NotEmpty(t, reply.Response)
	assert.NotEmpty(t, reply.SessionID)
}

type failingRouter struct{}

func (failingRouter) Answer(context.Context, intent.Request) (intent.Answer, error) {
	return intent.Answer{}, errors.New("boom")
}

func TestAsk_Errors(t *testing.T) {
	svc := NewService(failingRouter{}, session.NewMemory(0, 10, 50), nil, nil, logger.NewNop())

	_, err := svc.Ask(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Ask(context.Background(), "", "Quantos funcionários temos?")
	assert.EqualError(t, err, "boom")
}
