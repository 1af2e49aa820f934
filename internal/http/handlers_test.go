package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/matchups"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/players"
	"github.com/mauv0809/torneios/internal/rankings"
	"github.com/mauv0809/torneios/internal/students"
	"github.com/mauv0809/torneios/internal/tournaments"
	"github.com/mauv0809/torneios/internal/tree"
	"github.com/mauv0809/torneios/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testKey    = "chave"
	testSecret = "segredo"
)

type testServer struct {
	*Server
	metrics *metrics.Mock
	events  *events.Mock
	store   tree.Store
}

func testConfig() config.Config {
	return config.Config{
		Auth:      config.AuthConfig{Key: testKey, Secret: testSecret},
		LoginRate: config.RateConfig{PerSecond: 1, Burst: 3},
	}
}

// setupTestServer wires every store over an in-memory tree.
func setupTestServer(t *testing.T, wrap ...func(tree.Store) tree.Store) *testServer {
	t.Helper()
	backend, err := tree.OpenFile("")
	require.NoError(t, err)
	var store tree.Store = tree.New(backend)
	for _, w := range wrap {
		store = w(store)
	}

	metricsMock := metrics.NewMock()
	pub := events.NewMock()
	stores := Stores{
		Players:     players.New(store, metricsMock, pub),
		Matchups:    matchups.New(store, metricsMock, pub),
		Rankings:    rankings.New(store, metricsMock, pub),
		Tournaments: tournaments.New(store, pub),
		Students:    students.New(store, pub),
		Users:       users.New(store, pub, bcrypt.MinCost),
	}
	reg := prometheus.NewRegistry()
	server := NewServer(store, stores, metricsMock, promHandler(reg), testConfig())
	return &testServer{Server: server, metrics: metricsMock, events: pub, store: store}
}

func promHandler(reg *prometheus.Registry) http.Handler {
	return metrics.NewMetricsHandler(reg)
}

func basicAuth(key, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(key+":"+secret))
}

// do sends an authenticated request with an optional JSON body.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", basicAuth(testKey, testSecret))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rr)["message"]
}

func TestHealthCheckHandler(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodGet, "/nao-existe", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Rota não encontrada", message(t, rr))
}

func TestPlayersLifecycle(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/jogadores", map[string]any{"nome": "Ana"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[map[string]any](t, rr)
	assert.Equal(t, "1", created["id"])

	rr = s.do(t, http.MethodPost, "/jogadores", map[string]any{"nome": "Bea"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "2", decode[map[string]any](t, rr)["id"])
	assert.Equal(t, 2, s.metrics.IDsAllocated(players.Collection))

	rr = s.do(t, http.MethodGet, "/jogadores/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bea", decode[map[string]any](t, rr)["nome"])

	rr = s.do(t, http.MethodPut, "/jogadores/2", map[string]any{"nivel": "A"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"id": "2", "nome": "Bea", "nivel": "A"}, decode[map[string]any](t, rr))

	rr = s.do(t, http.MethodGet, "/jogadores?nome=an", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]map[string]any](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0]["nome"])

	rr = s.do(t, http.MethodDelete, "/jogadores/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/jogadores/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, players.MsgNotFound, message(t, rr))

	// Deleted ids are never handed out again.
	rr = s.do(t, http.MethodPost, "/jogadores", map[string]any{"nome": "Cris"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "3", decode[map[string]any](t, rr)["id"])

	ops := make([]events.Op, 0)
	for _, c := range s.events.Changes() {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []events.Op{events.OpCreate, events.OpCreate, events.OpUpdate, events.OpDelete, events.OpCreate}, ops)
}

func TestMalformedBody(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/jogadores", strings.NewReader("{nope"))
	req.Header.Set("Authorization", basicAuth(testKey, testSecret))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Corpo da requisição inválido", message(t, rr))
}

func TestRankingDuplicateName(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/rankings", map[string]any{"nome": "Open 2024"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Open_2024", decode[map[string]any](t, rr)["id"])

	rr = s.do(t, http.MethodPost, "/rankings", map[string]any{"nome": "Open  2024"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, rankings.MsgDuplicate, message(t, rr))

	rr = s.do(t, http.MethodPost, "/rankings", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Campos obrigatórios ausentes: nome", message(t, rr))
}

func TestRankingPlayersAndRounds(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodPost, "/rankings", map[string]any{"nome": "Masters"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodPost, "/rankings/Masters/jogadores", map[string]any{"nome": "Ana"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "1", decode[map[string]any](t, rr)["id"])

	rr = s.do(t, http.MethodPost, "/rankings/Masters/jogadores", map[string]any{"nome": "Bea"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "2", decode[map[string]any](t, rr)["id"])

	rr = s.do(t, http.MethodGet, "/rankings/Masters/jogadores", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]map[string]any](t, rr), 2)

	rr = s.do(t, http.MethodPost, "/rankings/Nope/jogadores", map[string]any{"nome": "Ana"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	round := []any{map[string]any{"jogador1": "Ana", "jogador2": "Bea", "placar": "6x4"}}
	rr = s.do(t, http.MethodPut, "/rankings/Masters/confrontos/1", round)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/rankings/Masters/confrontos/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, round, decode[[]any](t, rr), "a stored round reads back unchanged")

	rr = s.do(t, http.MethodDelete, "/rankings/Masters/confrontos/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodGet, "/rankings/Masters/confrontos/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEscapedSlashInIdIsNotFound(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodPost, "/rankings", map[string]any{"nome": "Open"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = s.do(t, http.MethodPut, "/rankings/Open/confrontos/1", []any{map[string]any{"jogador1": "Ana"}})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPost, "/torneios", map[string]any{"nome": "Open"})
	require.Equal(t, http.StatusCreated, rr.Code)

	ranking := s.do(t, http.MethodGet, "/rankings/Open", nil).Body.String()
	torneio := s.do(t, http.MethodGet, "/torneios/Open", nil).Body.String()

	rr = s.do(t, http.MethodPost, "/rankings/Open%2Fconfrontos/jogadores", map[string]any{"nome": "Eve"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, rankings.MsgNotFound, message(t, rr))

	rr = s.do(t, http.MethodPut, "/rankings/Open%2Fjogadores/confrontos/1", []any{"x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, rankings.MsgNotFound, message(t, rr))

	rr = s.do(t, http.MethodGet, "/rankings/Open%2Fconfrontos/jogadores", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodPut, "/torneios/Open%2Fjogadores/confrontos", map[string]any{"fase": "final", "p1": "Eve"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, tournaments.MsgNotFound, message(t, rr))

	rr = s.do(t, http.MethodGet, "/rankings/Open", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ranking, rr.Body.String(), "the ranking is untouched")
	rr = s.do(t, http.MethodGet, "/torneios/Open", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, torneio, rr.Body.String(), "the tournament is untouched")

	rr = s.do(t, http.MethodGet, "/rankings/Open/confrontos/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{map[string]any{"jogador1": "Ana"}}, decode[[]any](t, rr))
}

func TestRepeatedReadsAreByteIdentical(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodPost, "/rankings", map[string]any{"nome": "Masters"})
	require.Equal(t, http.StatusCreated, rr.Code)
	for _, nome := range []string{"Ana", "Bea", "Cris"} {
		rr = s.do(t, http.MethodPost, "/rankings/Masters/jogadores", map[string]any{"nome": nome, "pontos": 3, "clube": map[string]any{"nome": "Tênis", "cidade": "Recife"}})
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	for _, rodada := range []string{"1", "2", "10"} {
		round := []any{
			map[string]any{"jogador1": "Ana", "jogador2": "Bea", "placar": "6x4", "sets": []any{6, 4}},
			map[string]any{"jogador1": "Cris", "jogador2": "Ana", "placar": "7x5"},
		}
		rr = s.do(t, http.MethodPut, "/rankings/Masters/confrontos/"+rodada, round)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	for _, path := range []string{
		"/rankings/Masters",
		"/rankings/Masters/jogadores",
		"/rankings/Masters/confrontos",
		"/rankings",
	} {
		first := s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, first.Code, path)
		second := s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, second.Code, path)
		assert.Equal(t, first.Body.String(), second.Body.String(), path)
	}
}

func TestTournamentMatchupsPut(t *testing.T) {
	s := setupTestServer(t)
	rr := s.do(t, http.MethodPost, "/torneios", map[string]any{"nome": "Open"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodPut, "/torneios/Open/confrontos", map[string]any{"fase": "semi", "p1": "Ana"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodPut, "/torneios/Open/confrontos", map[string]any{"fase": "semi", "p1": "Bea"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/torneios/Open/confrontos/semi", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bea", decode[map[string]any](t, rr)["p1"])

	rr = s.do(t, http.MethodPut, "/torneios/Open/confrontos", []any{
		map[string]any{"fase": "final", "p1": "Cris"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, "/torneios/Open/confrontos", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[[]map[string]any](t, rr)
	require.Len(t, list, 1)
	assert.Equal(t, "final", list[0]["fase"])

	rr = s.do(t, http.MethodPut, "/torneios/Open/confrontos", "texto")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodGet, "/torneios/Nope/confrontos", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, tournaments.MsgNotFound, message(t, rr))
}

func TestStudentsByCategoryAndNote(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/alunos", map[string]any{"nome": "Ana Silva", "categoria": "B"})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = s.do(t, http.MethodPost, "/alunos", map[string]any{"nome": "Bruno", "categoria": "A"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = s.do(t, http.MethodGet, "/alunos/B", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Ana Silva"}, decode[[]string](t, rr))

	rr = s.do(t, http.MethodGet, "/alunos/C", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{}, decode[[]string](t, rr))

	rr = s.do(t, http.MethodPut, "/alunos/Ana%20Silva/anotacao", map[string]any{"anotacao": "Treinar saque"})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, http.MethodGet, "/alunos/Ana%20Silva/anotacao", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Treinar saque", decode[map[string]string](t, rr)["anotacao"])

	rr = s.do(t, http.MethodPut, "/alunos/Ana%20Silva/anotacao", map[string]any{"anotacao": 3})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUsersLoginFlow(t *testing.T) {
	s := setupTestServer(t)

	rr := s.do(t, http.MethodPost, "/createUser", map[string]any{"email": "Ana@Clube.com", "password": "s3nha", "nome": "Ana"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decode[map[string]any](t, rr)
	assert.NotContains(t, created, "password")

	rr = s.do(t, http.MethodPost, "/login", map[string]any{"email": "ana@clube.com", "password": "s3nha"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ana@clube.com", decode[map[string]any](t, rr)["email"])

	rr = s.do(t, http.MethodPost, "/login", map[string]any{"email": "ana@clube.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, users.MsgWrongPassword, message(t, rr))
}

// brokenReads fails every read so handlers answer with an internal error.
type brokenReads struct {
	tree.Store
}

func (b brokenReads) Get(context.Context, string) (any, error) {
	return nil, errors.New("disk on fire")
}

func TestStoreFailureIsHiddenAndCounted(t *testing.T) {
	s := setupTestServer(t, func(store tree.Store) tree.Store { return brokenReads{Store: store} })

	rr := s.do(t, http.MethodGet, "/jogadores", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Erro interno do servidor", message(t, rr))
	assert.NotContains(t, rr.Body.String(), "disk on fire")
	assert.Equal(t, 1, s.metrics.StoreFailures("BackingStoreReadFailure"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	health := httptest.NewRecorder()
	s.ServeHTTP(health, req)
	assert.Equal(t, http.StatusServiceUnavailable, health.Code)
}
