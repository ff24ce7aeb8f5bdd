package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/domain/checkout"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// Store is the Redis-backed per-user state store. Every key is scoped
// to one user; there is no cross-user coordination. Reads fail open: a
// payload that no longer parses is deleted and the zero value returned.
type Store struct {
	client *redis.Client
	logger *logger.Logger
}

func NewStore(conn *Connection, log *logger.Logger) *Store {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &Store{
		client: client,
		logger: log,
	}
}

func cartKey(userID string) string {
	return fmt.Sprintf("user:%s:cart", userID)
}

func holdKey(userID string) string {
	return fmt.Sprintf("user:%s:hold", userID)
}

func sessionKey(userID string) string {
	return fmt.Sprintf("user:%s:payment_session", userID)
}

func stateKey(userID string) string {
	return fmt.Sprintf("user:%s:checkout_state", userID)
}

func lastPurchaseKey(userID string) string {
	return fmt.Sprintf("user:%s:last_purchase", userID)
}

func themeKey(userID string) string {
	return fmt.Sprintf("user:%s:theme", userID)
}

func otpCooldownKey(userID string) string {
	return fmt.Sprintf("user:%s:otp_cooldown", userID)
}

func tokenKey(token string) string {
	return fmt.Sprintf("token:%s", token)
}

func (s *Store) GetCart(ctx context.Context, userID string) (*cart.Cart, error) {
	payload, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return cart.NewCart(), nil
		}
		return nil, err
	}

	userCart, ok := DecodeCart(payload)
	if !ok {
		s.logger.Warn("Discarding corrupted cart payload", "user_id", userID)
		s.dropKey(ctx, cartKey(userID))
		return cart.NewCart(), nil
	}
	return userCart, nil
}

func (s *Store) SaveCart(ctx context.Context, userID string, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(userID), payload, 0).Err()
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}

func (s *Store) GetHold(ctx context.Context, userID string) (*checkout.Hold, error) {
	payload, err := s.client.Get(ctx, holdKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	hold, ok := DecodeHold(payload)
	if !ok {
		s.logger.Warn("Discarding corrupted hold payload", "user_id", userID)
		s.dropKey(ctx, holdKey(userID))
		return nil, nil
	}
	return hold, nil
}

func (s *Store) SaveHold(ctx context.Context, userID string, hold *checkout.Hold, ttl time.Duration) error {
	payload, err := json.Marshal(hold)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, holdKey(userID), payload, ttl).Err()
}

func (s *Store) ClearHold(ctx context.Context, userID string) error {
	return s.client.Del(ctx, holdKey(userID)).Err()
}

func (s *Store) GetPaymentSession(ctx context.Context, userID string) (*checkout.PaymentSession, error) {
	payload, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	session, ok := DecodePaymentSession(payload)
	if !ok {
		s.logger.Warn("Discarding corrupted payment session payload", "user_id", userID)
		s.dropKey(ctx, sessionKey(userID))
		return nil, nil
	}
	return session, nil
}

func (s *Store) SavePaymentSession(ctx context.Context, userID string, session *checkout.PaymentSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(userID), payload, ttl).Err()
}

func (s *Store) ClearPaymentSession(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}

func (s *Store) GetCheckoutState(ctx context.Context, userID string) (checkout.State, error) {
	result, err := s.client.Get(ctx, stateKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return checkout.StateIdle, nil
		}
		return checkout.StateIdle, err
	}

	state := checkout.State(result)
	if !state.Valid() {
		s.logger.Warn("Discarding corrupted checkout state", "user_id", userID, "state", result)
		s.dropKey(ctx, stateKey(userID))
		return checkout.StateIdle, nil
	}
	return state, nil
}

func (s *Store) SetCheckoutState(ctx context.Context, userID string, state checkout.State) error {
	return s.client.Set(ctx, stateKey(userID), string(state), 0).Err()
}

func (s *Store) GetLastPurchase(ctx context.Context, userID string) (*checkout.PurchaseRecord, error) {
	payload, err := s.client.Get(ctx, lastPurchaseKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	record, ok := DecodePurchaseRecord(payload)
	if !ok {
		s.logger.Warn("Discarding corrupted purchase record", "user_id", userID)
		s.dropKey(ctx, lastPurchaseKey(userID))
		return nil, nil
	}
	return record, nil
}

func (s *Store) SetLastPurchase(ctx context.Context, userID string, record *checkout.PurchaseRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, lastPurchaseKey(userID), payload, 0).Err()
}

func (s *Store) ClearLastPurchase(ctx context.Context, userID string) error {
	return s.client.Del(ctx, lastPurchaseKey(userID)).Err()
}

// CompletePurchase runs the success-path cleanup in one transactional
// pipeline so the caller never observes a cleared cart without a
// written purchase record.
func (s *Store) CompletePurchase(ctx context.Context, userID string, record *checkout.PurchaseRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lastPurchaseKey(userID), payload, 0)
		pipe.Del(ctx, cartKey(userID))
		pipe.Del(ctx, holdKey(userID))
		pipe.Del(ctx, sessionKey(userID))
		pipe.Set(ctx, stateKey(userID), string(checkout.StateSucceeded), 0)
		return nil
	})
	return err
}

func (s *Store) GetTheme(ctx context.Context, userID string) (string, error) {
	result, err := s.client.Get(ctx, themeKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "light", nil
		}
		return "", err
	}
	return result, nil
}

func (s *Store) SetTheme(ctx context.Context, userID, theme string) error {
	return s.client.Set(ctx, themeKey(userID), theme, 0).Err()
}

func (s *Store) CacheVerifiedToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(token), userID, ttl).Err()
}

func (s *Store) LookupVerifiedToken(ctx context.Context, token string) (string, error) {
	result, err := s.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return result, nil
}

func (s *Store) StartOTPCooldown(ctx context.Context, userID string, cooldown time.Duration) (bool, time.Duration, error) {
	set, err := s.client.SetNX(ctx, otpCooldownKey(userID), "1", cooldown).Result()
	if err != nil {
		return false, 0, err
	}
	if set {
		return true, cooldown, nil
	}

	remaining, err := s.client.TTL(ctx, otpCooldownKey(userID)).Result()
	if err != nil {
		return false, 0, err
	}
	if remaining < 0 {
		remaining = 0
	}
	return false, remaining, nil
}

func (s *Store) ClearSession(ctx context.Context, userID, token string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, cartKey(userID))
	pipe.Del(ctx, holdKey(userID))
	pipe.Del(ctx, sessionKey(userID))
	pipe.Del(ctx, stateKey(userID))
	pipe.Del(ctx, lastPurchaseKey(userID))
	pipe.Del(ctx, themeKey(userID))
	if token != "" {
		pipe.Del(ctx, tokenKey(token))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// SweepExpiredHolds walks all cached holds and drops those past the
// full backend TTL, together with their payment sessions. The per-key
// Redis TTL already reclaims most of them; the sweep also resets the
// checkout state an abandoned flow left behind.
func (s *Store) SweepExpiredHolds(ctx context.Context, ttl time.Duration) (int, error) {
	var removed int
	now := time.Now().UTC()

	iter := s.client.Scan(ctx, 0, "user:*:hold", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		payload, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		hold, ok := DecodeHold(payload)
		if !ok {
			s.dropKey(ctx, key)
			continue
		}
		if !hold.Expired(now, ttl) {
			continue
		}

		userID := strings.TrimSuffix(strings.TrimPrefix(key, "user:"), ":hold")

		pipe := s.client.Pipeline()
		pipe.Del(ctx, key)
		if userID != "" {
			pipe.Del(ctx, sessionKey(userID))
			pipe.Set(ctx, stateKey(userID), string(checkout.StateIdle), 0)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.logger.Error("Failed to sweep expired hold", "error", err, "key", key)
			continue
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}

	return removed, nil
}

func (s *Store) dropKey(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("Failed to drop corrupted key", "error", err, "key", key)
	}
}
