package http

import (
	"net/http"

	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/matchups"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/players"
	"github.com/mauv0809/torneios/internal/rankings"
	"github.com/mauv0809/torneios/internal/students"
	"github.com/mauv0809/torneios/internal/tournaments"
	"github.com/mauv0809/torneios/internal/tree"
	"github.com/mauv0809/torneios/internal/users"
)

type Server struct {
	Store          tree.Store
	Players        players.PlayerStore
	Matchups       matchups.MatchupStore
	Rankings       rankings.RankingStore
	Tournaments    tournaments.TournamentStore
	Students       students.StudentStore
	Users          users.UserStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	loginLimiter   *ipLimiter
}

// Stores groups the collection stores the server exposes.
type Stores struct {
	Players     players.PlayerStore
	Matchups    matchups.MatchupStore
	Rankings    rankings.RankingStore
	Tournaments tournaments.TournamentStore
	Students    students.StudentStore
	Users       users.UserStore
}
