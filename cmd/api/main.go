// @title Tempo API
// @description API for the personal productivity tracker "Tempo"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"strconv"

	"github.com/limbo/tempo/internal/api"
	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/internal/service"
	"github.com/limbo/tempo/pkg/cleanup"
	"github.com/limbo/tempo/pkg/config"
	jwtservice "github.com/limbo/tempo/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	defer cleanup.CleanUp()

	collections := repository.NewCollections(newStore(cfg))

	userService := service.NewUserService(collections)
	categoryService := service.NewCategoryService(collections)
	scheduleService := service.NewScheduleService(collections)

	seed(userService, categoryService, scheduleService)

	serv := api.New(&api.ServicesList{
		UserService:     userService,
		CategoryService: categoryService,
		ScheduleService: scheduleService,
		TaskService:     service.NewTaskService(collections),
		PlanService:     service.NewPlanService(collections),
		ReviewService:   service.NewReviewService(collections),
		StatsService:    service.NewStatsService(collections),
		JwtService:      jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}

func newStore(cfg *config.Config) repository.CollectionStore {
	switch cfg.GetStringOr("STORE_DRIVER", "postgres") {
	case "redis":
		db, err := strconv.Atoi(cfg.GetStringOr("REDIS_DB", "0"))
		if err != nil {
			log.Fatal("invalid REDIS_DB value: " + err.Error())
		}
		return repository.NewRedisStore(
			cfg.GetString("REDIS_ADDRESS"),
			cfg.GetString("REDIS_PASSWORD"),
			db,
		)
	case "memory":
		return repository.NewMemoryStore()
	default:
		return repository.NewPostgresStore(&repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		})
	}
}

func seed(users *service.UserService, categories *service.CategoryService, schedules *service.ScheduleService) {
	ctx := context.Background()
	if err := users.EnsureAdminAccount(ctx); err != nil {
		log.Fatal(err)
	}
	if err := users.EnsureDemoUser(ctx); err != nil {
		log.Fatal(err)
	}
	if err := categories.EnsureDefaults(ctx); err != nil {
		log.Fatal(err)
	}
	if err := schedules.EnsureDefault(ctx); err != nil {
		log.Fatal(err)
	}
}
