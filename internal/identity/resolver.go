package identity

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"nardchat/internal/logger"
	"nardchat/internal/metrics"
	"nardchat/internal/models"
	"nardchat/internal/store"
	"nardchat/internal/utils"
)

const (
	cacheSize = 4096
	// resolveTimeout bounds a shared resolution once it no longer follows
	// the cancellation of the caller that started it.
	resolveTimeout = 10 * time.Second
)

// Resolver maps a wallet to a user: stored row, else a freshly created row,
// else a synthetic identity. Safe for concurrent use.
type Resolver struct {
	store     IdentityStore
	synthetic SyntheticStore
	admins    AdminList

	group singleflight.Group
	cache *utils.TTLCache[string, models.User]
	ttl   time.Duration
}

type resolved struct {
	user   models.User
	source Source
}

// NewResolver builds a resolver over store. ttl bounds how long stored
// identities are cached; 0 disables the cache.
func NewResolver(st IdentityStore, admins AdminList, ttl time.Duration) *Resolver {
	r := &Resolver{
		store:     st,
		synthetic: SyntheticStore{Admins: admins},
		admins:    admins,
		ttl:       ttl,
	}
	if ttl > 0 {
		cache, err := utils.NewTTLCache[string, models.User](cacheSize)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("identity cache disabled")
		} else {
			r.cache = cache
		}
	}
	return r
}

func (r *Resolver) Admins() AdminList {
	return r.admins
}

// Resolve never fails and never returns nil.
func (r *Resolver) Resolve(ctx context.Context, wallet, username string) *models.User {
	u, _ := r.ResolveWithSource(ctx, wallet, username)
	return u
}

// ResolveWithSource is Resolve plus the path that produced the identity.
// Concurrent calls for the same address share one store round trip; the
// username of the call that started it wins for a row it creates.
func (r *Resolver) ResolveWithSource(ctx context.Context, wallet, username string) (*models.User, Source) {
	wallet = Canonical(wallet)

	if r.cache != nil {
		if u, ok := r.cache.Get(wallet); ok {
			metrics.IdentityResolutions.WithLabelValues(string(SourceStored)).Inc()
			return &u, SourceStored
		}
	}

	v, _, _ := r.group.Do(wallet, func() (interface{}, error) {
		// Callers joining this flight must not inherit the first caller's cancellation.
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()
		return r.resolve(sctx, wallet, username), nil
	})
	res := v.(resolved)

	metrics.IdentityResolutions.WithLabelValues(string(res.source)).Inc()
	if r.cache != nil && res.source != SourceSynthetic {
		r.cache.Set(wallet, res.user, r.ttl)
	}

	u := res.user
	return &u, res.source
}

// Forget drops a cached identity, e.g. after an administrative change.
func (r *Resolver) Forget(wallet string) {
	if r.cache != nil {
		r.cache.Delete(Canonical(wallet))
	}
}

func (r *Resolver) resolve(ctx context.Context, wallet, username string) resolved {
	log := logger.Log.With().Str("wallet", wallet).Logger()

	u, err := r.store.FindByWallet(ctx, wallet)
	switch {
	case err == nil && u != nil:
		return resolved{user: *u, source: SourceStored}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		log.Error().Err(err).Msg("identity lookup failed, using synthetic identity")
		return r.fallback(wallet, username)
	}

	if username == "" {
		username = DefaultUsername(wallet)
	}
	created := &models.User{
		WalletAddress: wallet,
		Username:      username,
		Role:          r.admins.RoleFor(wallet),
	}
	createErr := r.store.Create(ctx, created)
	if createErr != nil {
		log.Warn().Err(createErr).Msg("identity create failed, re-reading")
	}

	// A concurrent creator may have won; the stored row is authoritative.
	u, err = r.store.FindByWallet(ctx, wallet)
	if err == nil && u != nil {
		if createErr != nil {
			return resolved{user: *u, source: SourceStored}
		}
		return resolved{user: *u, source: SourceCreated}
	}
	if createErr == nil {
		log.Warn().Err(err).Msg("identity re-read failed after create")
		return resolved{user: *created, source: SourceCreated}
	}

	log.Error().Err(err).Msg("identity unavailable, using synthetic identity")
	return r.fallback(wallet, username)
}

func (r *Resolver) fallback(wallet, username string) resolved {
	return resolved{user: *r.synthetic.Derive(wallet, username), source: SourceSynthetic}
}
