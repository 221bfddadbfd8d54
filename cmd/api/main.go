package main

import (
	"log"

	"github.com/limbo/lifelog/internal/api"
	"github.com/limbo/lifelog/internal/repository"
	"github.com/limbo/lifelog/internal/service"
	"github.com/limbo/lifelog/pkg/cleanup"
	"github.com/limbo/lifelog/pkg/config"
	jwtservice "github.com/limbo/lifelog/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	eventsRepo := repository.NewEventsRepo(&dbCfg)
	userService := service.NewUserService(repository.NewUsersRepo(&dbCfg))
	eventsService := service.NewEventsService(eventsRepo)
	statsService := service.NewStatsService(eventsRepo)
	serv := api.New(&api.ServicesList{
		UserService:   userService,
		EventsService: eventsService,
		StatsService:  statsService,
		JwtService:    jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
