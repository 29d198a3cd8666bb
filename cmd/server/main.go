package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/menara-digital/menara/internal/db"
	"github.com/menara-digital/menara/internal/engine"
	"github.com/menara-digital/menara/internal/http/middleware"
	"github.com/menara-digital/menara/internal/prayer"
	"github.com/menara-digital/menara/internal/redis"
	"github.com/menara-digital/menara/internal/wabot"
	"github.com/menara-digital/menara/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on process environment")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	env := LoadEnvironment()
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrations failed")
	}

	redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)

	store := db.NewStore()
	schedule := prayer.NewSchedule(prayer.NewHTTPProvider(env.PrayerAPIURL))
	sender := wabot.NewClient()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if env.SweepEnabled {
		notifier := engine.NewNotifier(engine.NewRedisLedger(redis.Rdb), sender)
		notifier.Generator = wabot.NewAIClient()
		notifier.Recorder = &worker.StoreRecorder{Store: store}

		sweep := worker.NewSweep(store, schedule, notifier)
		if env.MQTTBrokerURL != "" {
			middleware.SetBrokerURL(env.MQTTBrokerURL)
			client, err := middleware.CreateMQTTClient("menara-server")
			if err != nil {
				log.Error().Err(err).Msg("mqtt unavailable, state pushes disabled")
			} else {
				sweep.Publisher = middleware.NewMQTTPublisher(client)
				defer middleware.CleanupMQTT()
			}
		}
		sweep.Start(ctx)
		defer sweep.Stop()
	}

	if env.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, schedule, sender)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
