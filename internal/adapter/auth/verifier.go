package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kotsioskl2/vehicle-market/internal/config"
	"github.com/kotsioskl2/vehicle-market/internal/listing/usecase"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Claims is the token payload issued by the auth provider.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:%s", userID)
}

// NewRedisClient dials the session store and verifies it with a ping.
func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("failed to connect to redis", zap.String("address", cfg.Address), zap.Error(err))
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Address, err)
	}
	return rdb, nil
}

// Verifier resolves a bearer token into the tri-state session the dashboard
// gate consumes. A missing or bad token is an anonymous session; only a
// session-store failure leaves the session unresolved.
// SessionStore is the slice of the redis client the verifier reads from.
type SessionStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type Verifier struct {
	secret []byte
	store  SessionStore
	logger *zap.Logger
}

func NewVerifier(secret string, store SessionStore, logger *zap.Logger) *Verifier {
	return &Verifier{secret: []byte(secret), store: store, logger: logger}
}

// Resolve never returns an error: every outcome is a session state.
func (v *Verifier) Resolve(ctx context.Context, bearer string) usecase.Session {
	if bearer == "" {
		return usecase.Session{State: usecase.SessionAnonymous}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(bearer, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		v.logger.Debug("bearer token rejected", zap.Error(err))
		return usecase.Session{State: usecase.SessionAnonymous}
	}

	stored, err := v.store.Get(ctx, sessionKey(claims.UserID)).Result()
	if errors.Is(err, redis.Nil) {
		// Valid signature but no live session: logged out.
		return usecase.Session{State: usecase.SessionAnonymous}
	}
	if err != nil {
		v.logger.Warn("session lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return usecase.Session{State: usecase.SessionUnresolved}
	}
	if stored != bearer {
		return usecase.Session{State: usecase.SessionAnonymous}
	}

	return usecase.Session{
		State:  usecase.SessionAuthenticated,
		UserID: claims.UserID,
		Role:   claims.Role,
	}
}
