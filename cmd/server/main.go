package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"nardchat/internal/auth"
	"nardchat/internal/chain"
	"nardchat/internal/config"
	"nardchat/internal/db"
	"nardchat/internal/handlers"
	"nardchat/internal/identity"
	"nardchat/internal/logger"
	"nardchat/internal/middleware"
	"nardchat/internal/router"
	"nardchat/internal/services"
	"nardchat/internal/store"
	"nardchat/internal/tree"
)

const memoryNonceSlots = 10000

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	// Initialize Database
	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("open database")
	}
	st := store.New(gdb)

	nonces, err := newNonceStore(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("nonce store")
	}

	contract, err := chain.NewDiscussionStorage(cfg.ContractAddress, cfg.ChainID)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("contract")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化异步排名服务
	ranking := services.NewRankingService(st.Stories)
	go ranking.Run(ctx)

	resolver := identity.NewResolver(st.Users, identity.NewAdminList(cfg.AdminWalletList()), cfg.IdentityTTL)

	orphans := tree.OrphanDrop
	if cfg.PromoteOrphans {
		orphans = tree.OrphanPromote
	}
	forum := services.NewForum(services.ForumDeps{
		Stories:       st.Stories,
		Comments:      st.Comments,
		Votes:         st.Votes,
		Notifications: st.Notifications,
		Identity:      resolver,
		Ranking:       ranking,
		Tree:          tree.Options{MaxDepth: cfg.CommentMaxDepth, Orphans: orphans},
	})

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{Path: "/", MaxAge: int(cfg.JWTTTL.Seconds()), HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("nardchat_session", sessionStore))
	r.Use(middleware.LoadUser(resolver, []byte(cfg.JWTSecret)))

	router.RegisterRoutes(r, router.Deps{
		Story: handlers.NewStoryHandler(forum),
		Vote:  handlers.NewVoteHandler(forum),
		Auth: handlers.NewAuthHandler(nonces, resolver, st.Notifications, handlers.AuthConfig{
			AppName:   cfg.AppName,
			JWTSecret: []byte(cfg.JWTSecret),
			JWTTTL:    cfg.JWTTTL,
		}),
		Admin:        handlers.NewAdminHandler(forum, contract),
		Notification: handlers.NewNotificationHandler(st.Notifications),
		User:         handlers.NewUserHandler(st.Users),
		RateLimiter:  middleware.NewRateLimiter(cfg.RateLimitPerMin),
		Origins:      cfg.AllowedOriginList(),
		ManifestPath: cfg.FarcasterManifest,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Port).Msg("Nard.chat server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("shutdown")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newNonceStore uses Redis when configured so that several instances share
// pending challenges; otherwise nonces live in process memory.
func newNonceStore(redisURL string) (auth.NonceStore, error) {
	if redisURL == "" {
		logger.Log.Warn().Msg("REDIS_URL not set, keeping sign-in nonces in memory")
		return auth.NewMemoryNonceStore(memoryNonceSlots)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return auth.NewRedisNonceStore(rdb), nil
}
