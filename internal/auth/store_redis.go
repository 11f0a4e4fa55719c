// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dkravets/inkwell/internal/platform/constants"
	"github.com/dkravets/inkwell/internal/platform/dberr"
)

// RedisCodeStore implements [CodeStore] on Redis. Expiry is delegated to
// Redis TTLs; redemption uses GETDEL so a code is gone the moment it is
// read.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore wires the code store to a Redis client.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

var _ CodeStore = (*RedisCodeStore)(nil)

// SetRecoveryCode implements [CodeStore].
func (store *RedisCodeStore) SetRecoveryCode(context context.Context, code, userID string) error {
	key := constants.RedisPrefixRecoveryCode + code
	if err := store.client.Set(context, key, userID, recoveryCodeTTL).Err(); err != nil {
		return fmt.Errorf("auth: failed to store recovery code: %w", err)
	}
	return nil
}

// ConsumeRecoveryCode implements [CodeStore].
func (store *RedisCodeStore) ConsumeRecoveryCode(context context.Context, code string) (string, error) {
	return store.consume(context, constants.RedisPrefixRecoveryCode+code)
}

// SetConfirmationCode implements [CodeStore].
func (store *RedisCodeStore) SetConfirmationCode(context context.Context, code, userID string) error {
	key := constants.RedisPrefixConfirmCode + code
	if err := store.client.Set(context, key, userID, confirmationCodeTTL).Err(); err != nil {
		return fmt.Errorf("auth: failed to store confirmation code: %w", err)
	}
	return nil
}

// ConsumeConfirmationCode implements [CodeStore].
func (store *RedisCodeStore) ConsumeConfirmationCode(context context.Context, code string) (string, error) {
	return store.consume(context, constants.RedisPrefixConfirmCode+code)
}

// consume atomically reads and deletes a code key.
func (store *RedisCodeStore) consume(context context.Context, key string) (string, error) {
	userID, err := store.client.GetDel(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", dberr.ErrNotFound
		}
		return "", fmt.Errorf("auth: failed to consume code: %w", err)
	}
	return userID, nil
}
