package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/nasalinha/backend/config"
	"github.com/nasalinha/backend/internal/domain"
	"github.com/nasalinha/backend/internal/domain/statistic"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/emailer"
	"github.com/nasalinha/backend/pkg/logger"
	"github.com/nasalinha/backend/pkg/router"
	"github.com/nasalinha/backend/pkg/storage"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/nasalinha/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context

	userRepo         repository.UserRepository
	seasonRepo       repository.SeasonRepository
	checkInRepo      repository.CheckInRepository
	pointRepo        repository.PointRepository
	refreshTokenRepo repository.RefreshTokenRepository
	fileRepo         repository.FileRepository

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	seasonDomain    domain.SeasonDomain
	checkInDomain   domain.CheckInDomain
	pointDomain     domain.PointDomain
	statisticDomain domain.StatisticDomain

	configs     *config.Configs
	logger      logger.Logger
	db          *gorm.DB
	storage     storage.Storage
	redisClient xredis.Client
	leaderboard statistic.Leaderboard
	emailer     emailer.Emailer
	router      *router.Router
	server      *http.Server
}

// loadAll prepares everything the commands share. Each start* action calls it
// first.
func (s *srv) loadAll(cliCtx *cli.Context) {
	s.ctx = context.Background()
	s.loadConfig(cliCtx)
	s.loadLogger()
	s.loadDatabase()
	s.loadStorage()
	s.loadRedisClient()
	s.loadEmailer()
	s.loadRepos()
	s.loadDomains()
}

func (s *srv) loadConfig(cliCtx *cli.Context) {
	configs := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "nasalinha"),
			Password: getEnv("MYSQL_PASSWORD", "nasalinha"),
			Database: getEnv("MYSQL_DATABASE", "nasalinha"),
		},
		ApiServer: config.APIServerConfigs{
			Host:         getEnv("API_HOST", "0.0.0.0"),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_CERT", ""),
			Key:          getEnv("API_KEY", ""),
			AllowCORS:    strings.Split(getEnv("API_ALLOW_CORS", "http://localhost:3000"), ","),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", 10),
			MaxLimit:     getEnvInt("API_MAX_LIMIT", 50),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", time.Hour),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getEnvDuration("REFRESH_TOKEN_DURATION", 30*24*time.Hour),
			},
			PasswordReset: config.TokenConfigs{
				Name:       "password_reset",
				Expiration: getEnvDuration("PASSWORD_RESET_DURATION", time.Hour),
			},
		},
		Storage: storage.S3Configs{
			Region:         getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", ""),
			SSLDisabled:    getEnvBool("STORAGE_SSL_DISABLED", true),
		},
		File: config.FileConfigs{
			MaxSize:       int64(getEnvInt("FILE_MAX_SIZE", 2*1024*1024)),
			CheckInBucket: getEnv("FILE_CHECKIN_BUCKET", "checkin"),
		},
		Email: config.EmailConfigs{
			Host:        getEnv("SMTP_HOST", "localhost"),
			Port:        getEnvInt("SMTP_PORT", 587),
			User:        getEnv("SMTP_USER", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			From:        getEnv("SMTP_FROM", "nasalinha@compjunior.com.br"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
	}

	// A toml file, when given, overrides the environment defaults.
	if path := cliCtx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			panic(err)
		}
	}

	s.configs = &configs
	s.ctx = xcontext.WithConfigs(s.ctx, configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" || s.configs.Env == "testing" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) loadStorage() {
	s.storage = storage.NewS3Storage(s.configs.Storage)
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadEmailer() {
	s.emailer = emailer.New(s.configs.Email)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.seasonRepo = repository.NewSeasonRepository()
	s.checkInRepo = repository.NewCheckInRepository()
	s.pointRepo = repository.NewPointRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.fileRepo = repository.NewFileRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.pointRepo, s.redisClient)

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo, s.emailer)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.seasonDomain = domain.NewSeasonDomain(s.seasonRepo)
	s.checkInDomain = domain.NewCheckInDomain(
		s.checkInRepo, s.seasonRepo, s.pointRepo, s.userRepo, s.fileRepo, s.storage, s.leaderboard)
	s.pointDomain = domain.NewPointDomain(s.pointRepo, s.userRepo, s.seasonRepo, s.leaderboard)
	s.statisticDomain = domain.NewStatisticDomain(s.pointRepo, s.userRepo, s.seasonRepo, s.leaderboard)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
