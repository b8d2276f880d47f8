package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/danmlarsen/workout-tracker-backend/internal/auth"
	"github.com/danmlarsen/workout-tracker-backend/internal/config"
)

// Issues a bearer token for a user, for local development against either auth mode.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	userID := flag.Int("user", 0, "user id the token is issued for")
	ttl := flag.Duration("ttl", auth.DefaultTTL, "token lifetime")
	flag.Parse()

	if *userID <= 0 {
		log.Fatalln("user id must be positive, use -user")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	var token string
	switch cfg.AuthMode {
	case config.AuthModeJWT:
		checker, err := auth.NewJWTChecker(os.Getenv("WT_JWT_SECRET"))
		if err != nil {
			log.Fatalf("jwt checker: %s", err)
		}
		token, err = checker.Sign(*userID, *ttl)
		if err != nil {
			log.Fatalf("sign token: %s", err)
		}
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("WT_REDIS_PASS"),
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("close redis client: %s", err)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		authService := auth.NewAuthService(*ttl, rdb, nil)
		token, err = authService.Login(ctx, *userID, time.Now())
		if err != nil {
			log.Errorf("create session: %s", err)
			return
		}
	}

	fmt.Println(token)
}
