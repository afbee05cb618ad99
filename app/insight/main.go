package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/insightmeet/goInsightMeet/business/analysis"
	"github.com/insightmeet/goInsightMeet/foundation/config"
	"github.com/insightmeet/goInsightMeet/foundation/external/diarizer"
	"github.com/insightmeet/goInsightMeet/foundation/external/relgraph"
	"github.com/insightmeet/goInsightMeet/foundation/external/summarizer"
	"github.com/insightmeet/goInsightMeet/foundation/external/vision"
	"github.com/insightmeet/goInsightMeet/foundation/frames"
	"github.com/insightmeet/goInsightMeet/foundation/logger"
	"github.com/insightmeet/goInsightMeet/foundation/pubsub"
	"github.com/insightmeet/goInsightMeet/foundation/redis"
	"github.com/insightmeet/goInsightMeet/foundation/state"
	"github.com/insightmeet/goInsightMeet/foundation/store"
)

var (
	version   string
	buildTime string
)

func main() {
	// =================================================================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			Host            string        `conf:"default:0.0.0.0:8080"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			MaxUploadBytes  int64         `conf:"default:104857600"`
		}
		Paths struct {
			DataDirectory  string `conf:"default:data/"`
			ConfigFilePath string `conf:"default:insight.json"`
			FfmpegPath     string `conf:"default:ffmpeg"`
		}
		Redis struct {
			Enabled         bool   `conf:"default:false"`
			Address         string `conf:"default:localhost:6379"`
			Password        string `conf:"noprint"`
			AnalysisChannel string `conf:"default:insight:analysis"`
		}
		Logger struct {
			LogDirectory string `conf:"default:log/,noprint"`
		}
	}{
		Version: conf.Version{
			Build: version,
			Desc:  buildTime,
		},
	}

	help, err := conf.Parse("INSIGHT", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// =================================================================================================================
	// Application Logger

	log, err := logger.New(cfg.Logger.LogDirectory, "insight")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// =================================================================================================================
	// Collaborator Configuration

	services, err := config.Load(cfg.Paths.ConfigFilePath)
	if err != nil {
		log.Errorw("startup", "ERROR", err, "config", "using defaults")
		services = config.Default()
	}

	out, err := conf.String(&cfg)
	if err != nil {
		log.Errorw("startup", "ERROR", err)
	}
	log.Infow("startup", "version", version, "config", out)

	// =================================================================================================================
	// Availability Flags and Event Broker

	st := state.NewState()
	broker := pubsub.NewBroker()
	runEventLogger(broker, log)

	// =================================================================================================================
	// Redis Forwarder

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.AnalysisChannel, log)
		if err != nil {
			log.Errorw("startup: redis", "ERROR", err)
			st.Set(state.Redis, false)
		} else {
			defer redisClient.Close()
			runRedisForwarder(broker, redisClient, st, log)
		}
	} else {
		st.Set(state.Redis, false)
	}

	// =================================================================================================================
	// Analysis Pipeline

	pipeline := analysis.NewPipeline(analysis.Settings{
		Logger:  log,
		Scorer:  analysis.NewScorer(),
		Graph:   relgraph.New(services.Services.Graph.Endpoint, services.Services.Graph.Timeout()),
		Summary: summarizer.New(services.Services.Summary.Endpoint, services.Services.Summary.Timeout()),
	})

	// =================================================================================================================
	// Persistence

	records, err := store.New(cfg.Paths.DataDirectory, log)
	if err != nil {
		log.Errorw("startup: store", "ERROR", err)
		os.Exit(1)
	}

	// =================================================================================================================
	// HTTP Server

	h := &handlers{
		logger:         log,
		pipeline:       pipeline,
		diarizer:       diarizer.New(services.Services.Diarizer.Endpoint, services.Services.Diarizer.Timeout()),
		vision:         vision.New(services.Services.Vision.Endpoint, services.Services.Vision.Timeout()),
		visionCfg:      services.Services.Vision,
		frames:         frames.New(cfg.Paths.FfmpegPath),
		store:          records,
		broker:         broker,
		state:          st,
		maxUploadBytes: cfg.Web.MaxUploadBytes,
	}

	mux := http.NewServeMux()
	h.routes(mux)

	srv := &http.Server{Addr: cfg.Web.Host, Handler: mux}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Infow("startup", "status", "listening", "host", cfg.Web.Host)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		log.Errorw("server", "ERROR", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Errorw("shutdown", "ERROR", err)
			srv.Close()
		}
	}
}
