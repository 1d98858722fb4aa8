package bootstrap

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	authrepo "github.com/Totenem/Time-Tracker-App/internal/auth/repository"
	authservice "github.com/Totenem/Time-Tracker-App/internal/auth/service"
	"github.com/Totenem/Time-Tracker-App/internal/common/clock"
	"github.com/Totenem/Time-Tracker-App/internal/common/config"
	commoncrypto "github.com/Totenem/Time-Tracker-App/internal/common/crypto"
	"github.com/Totenem/Time-Tracker-App/internal/common/db"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
	trackrepo "github.com/Totenem/Time-Tracker-App/internal/track/repository"
	trackservice "github.com/Totenem/Time-Tracker-App/internal/track/service"
)

type App struct {
	Log          *logger.Logger
	Config       config.Config
	Pool         *pgxpool.Pool
	AuthService  *authservice.AuthService
	TokenService *authservice.TokenService
	TrackService *trackservice.TrackService
}

func New() (*App, error) {
	log, err := logger.New(os.Getenv("LOG_DIR"), "time-tracker", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
		return nil, err
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	if pool == nil {
		return nil, fmt.Errorf("failed to initialize database pool")
	}

	clk := clock.NewRealClock()
	hasher := commoncrypto.NewBcryptHasher(cfg.HashWorkers)
	idGenerator := commoncrypto.NewUUIDGenerator()

	tokenService, err := authservice.NewTokenService(cfg.TokenSecret, cfg.TokenTTL, clk)
	if err != nil {
		log.Fatalf("failed to initialize token service: %v", err)
		return nil, err
	}

	userRepo := authrepo.NewPgRepository(pool)
	authService := authservice.NewAuthService(userRepo, hasher, tokenService, idGenerator, clk, log)

	projectRepo := trackrepo.NewPgProjectRepository(pool)
	entryRepo := trackrepo.NewPgTimeEntryRepository(pool)
	trackService := trackservice.NewTrackService(entryRepo, projectRepo, idGenerator, clk, log)

	return &App{
		Log:          log,
		Config:       cfg,
		Pool:         pool,
		AuthService:  authService,
		TokenService: tokenService,
		TrackService: trackService,
	}, nil
}
