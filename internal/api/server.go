package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/lifelog/internal/service"
)

type Server struct {
	mx            *chi.Mux
	userService   service.UserServiceI
	eventsService service.EventsServiceI
	statsService  service.StatsServiceI
	jwtService    JWTServiceI
}

type ServicesList struct {
	UserService   service.UserServiceI
	EventsService service.EventsServiceI
	StatsService  service.StatsServiceI
	JwtService    JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:            chi.NewMux(),
		userService:   servicesOptions.UserService,
		eventsService: servicesOptions.EventsService,
		statsService:  servicesOptions.StatsService,
		jwtService:    servicesOptions.JwtService,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)
			r.Post("/events", s.LogEvent)
			r.Get("/events", s.GetEvents)
			r.Delete("/events/{id}", s.DeleteEvent)
			r.Post("/events/import", s.ImportEvents)
			r.Get("/stats/dashboard", s.Dashboard)
			r.Get("/stats/trends/{kind}", s.TrendSeries)
			r.Get("/stats/heatmap/{kind}", s.Heatmap)
			r.Get("/leaderboard", s.Leaderboard)
		})
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the routed mux, for tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}
