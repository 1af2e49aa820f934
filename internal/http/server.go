package http

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/http/handlers"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/tree"
)

func NewServer(store tree.Store, stores Stores, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Players:        stores.Players,
		Matchups:       stores.Matchups,
		Rankings:       stores.Rankings,
		Tournaments:    stores.Tournaments,
		Students:       stores.Students,
		Users:          stores.Users,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		loginLimiter:   newIPLimiter(cfg.LoginRate),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// public routes skip authentication; everything else goes through s.protected.
	s.Router.Handle("GET /metrics", s.public(s.MetricsHandler))
	s.Router.Handle("GET /health", s.public(handlers.HealthCheckHandler(s.Store)))

	s.Router.Handle("GET /jogadores", s.protected(handlers.ListPlayersHandler(s.Players)))
	s.Router.Handle("POST /jogadores", s.protected(handlers.CreatePlayerHandler(s.Players)))
	s.Router.Handle("GET /jogadores/{id}", s.protected(handlers.GetPlayerHandler(s.Players)))
	s.Router.Handle("PUT /jogadores/{id}", s.protected(handlers.UpdatePlayerHandler(s.Players)))
	s.Router.Handle("DELETE /jogadores/{id}", s.protected(handlers.DeletePlayerHandler(s.Players)))

	s.Router.Handle("GET /confrontos", s.protected(handlers.ListMatchupsHandler(s.Matchups)))
	s.Router.Handle("POST /confrontos", s.protected(handlers.CreateMatchupHandler(s.Matchups)))
	s.Router.Handle("GET /confrontos/{rodada}", s.protected(handlers.ListRoundHandler(s.Matchups)))
	s.Router.Handle("PUT /confrontos/{rodada}", s.protected(handlers.ReplaceRoundHandler(s.Matchups)))
	s.Router.Handle("DELETE /confrontos/{id}", s.protected(handlers.DeleteMatchupHandler(s.Matchups)))

	s.Router.Handle("GET /rankings", s.protected(handlers.ListRankingsHandler(s.Rankings)))
	s.Router.Handle("POST /rankings", s.protected(handlers.CreateRankingHandler(s.Rankings)))
	s.Router.Handle("GET /rankings/{rankingId}", s.protected(handlers.GetRankingHandler(s.Rankings)))
	s.Router.Handle("PUT /rankings/{rankingId}", s.protected(handlers.UpdateRankingHandler(s.Rankings)))
	s.Router.Handle("DELETE /rankings/{rankingId}", s.protected(handlers.DeleteRankingHandler(s.Rankings)))
	s.Router.Handle("GET /rankings/{rankingId}/jogadores", s.protected(handlers.ListRankingPlayersHandler(s.Rankings)))
	s.Router.Handle("POST /rankings/{rankingId}/jogadores", s.protected(handlers.AddRankingPlayerHandler(s.Rankings)))
	s.Router.Handle("GET /rankings/{rankingId}/jogadores/{playerId}", s.protected(handlers.GetRankingPlayerHandler(s.Rankings)))
	s.Router.Handle("PUT /rankings/{rankingId}/jogadores/{playerId}", s.protected(handlers.UpdateRankingPlayerHandler(s.Rankings)))
	s.Router.Handle("DELETE /rankings/{rankingId}/jogadores/{playerId}", s.protected(handlers.DeleteRankingPlayerHandler(s.Rankings)))
	s.Router.Handle("GET /rankings/{rankingId}/confrontos", s.protected(handlers.ListRankingRoundsHandler(s.Rankings)))
	s.Router.Handle("POST /rankings/{rankingId}/confrontos", s.protected(handlers.CreateRankingRoundHandler(s.Rankings)))
	s.Router.Handle("GET /rankings/{rankingId}/confrontos/{rodada}", s.protected(handlers.GetRankingRoundHandler(s.Rankings)))
	s.Router.Handle("PUT /rankings/{rankingId}/confrontos/{rodada}", s.protected(handlers.SetRankingRoundHandler(s.Rankings)))
	s.Router.Handle("DELETE /rankings/{rankingId}/confrontos/{rodada}", s.protected(handlers.DeleteRankingRoundHandler(s.Rankings)))

	s.Router.Handle("GET /torneios", s.protected(handlers.ListTournamentsHandler(s.Tournaments)))
	s.Router.Handle("POST /torneios", s.protected(handlers.CreateTournamentHandler(s.Tournaments)))
	s.Router.Handle("GET /torneios/{torneioId}", s.protected(handlers.GetTournamentHandler(s.Tournaments)))
	s.Router.Handle("PUT /torneios/{torneioId}", s.protected(handlers.UpdateTournamentHandler(s.Tournaments)))
	s.Router.Handle("DELETE /torneios/{torneioId}", s.protected(handlers.DeleteTournamentHandler(s.Tournaments)))
	s.Router.Handle("GET /torneios/{torneioId}/jogadores", s.protected(handlers.ListTournamentPlayersHandler(s.Tournaments)))
	s.Router.Handle("POST /torneios/{torneioId}/jogadores", s.protected(handlers.AddTournamentPlayerHandler(s.Tournaments)))
	s.Router.Handle("PUT /torneios/{torneioId}/jogadores", s.protected(handlers.ReplaceTournamentPlayersHandler(s.Tournaments)))
	s.Router.Handle("DELETE /torneios/{torneioId}/jogadores/{playerId}", s.protected(handlers.DeleteTournamentPlayerHandler(s.Tournaments)))
	s.Router.Handle("GET /torneios/{torneioId}/confrontos", s.protected(handlers.ListTournamentMatchupsHandler(s.Tournaments)))
	s.Router.Handle("PUT /torneios/{torneioId}/confrontos", s.protected(handlers.PutTournamentMatchupsHandler(s.Tournaments)))
	s.Router.Handle("GET /torneios/{torneioId}/confrontos/{fase}", s.protected(handlers.GetTournamentMatchupHandler(s.Tournaments)))
	s.Router.Handle("DELETE /torneios/{torneioId}/confrontos/{fase}", s.protected(handlers.DeleteTournamentMatchupHandler(s.Tournaments)))

	s.Router.Handle("GET /alunos", s.protected(handlers.ListStudentsHandler(s.Students)))
	s.Router.Handle("POST /alunos", s.protected(handlers.CreateStudentHandler(s.Students)))
	s.Router.Handle("GET /alunos/{categoria}", s.protected(handlers.StudentsByCategoryHandler(s.Students)))
	s.Router.Handle("PUT /alunos/{nome}", s.protected(handlers.UpdateStudentHandler(s.Students)))
	s.Router.Handle("DELETE /alunos/{nome}", s.protected(handlers.DeleteStudentHandler(s.Students)))
	s.Router.Handle("GET /alunos/{nome}/anotacao", s.protected(handlers.GetStudentNoteHandler(s.Students)))
	s.Router.Handle("PUT /alunos/{nome}/anotacao", s.protected(handlers.SetStudentNoteHandler(s.Students)))
	s.Router.Handle("DELETE /alunos/{nome}/anotacao", s.protected(handlers.DeleteStudentNoteHandler(s.Students)))

	s.Router.Handle("POST /createUser", s.protected(handlers.CreateUserHandler(s.Users)))
	s.Router.Handle("POST /login", s.protected(handlers.LoginHandler(s.Users), s.loginLimiter.middleware))
	s.Router.Handle("POST /updateUserData", s.protected(handlers.UpdateUserDataHandler(s.Users)))
	s.Router.Handle("GET /usuarios/{email}", s.protected(handlers.GetUserHandler(s.Users)))

	s.Router.Handle("/", s.public(handlers.NotFoundHandler()))
}

// public wraps routes that answer without credentials.
func (s *Server) public(h http.Handler, extra ...Middleware) http.Handler {
	return Chain(h, append([]Middleware{requestIDMiddleware, s.observeMiddleware, paramsMiddleware}, extra...)...)
}

// protected wraps routes that require the configured credentials.
func (s *Server) protected(h http.Handler, extra ...Middleware) http.Handler {
	return s.public(h, append([]Middleware{s.authMiddleware}, extra...)...)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
