package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vytor/colorflash/internal/logger"
	"github.com/vytor/colorflash/internal/repository"
)

// kvStore keeps every value as TEXT in the settings table and converts on read.
type kvStore struct {
	db *sql.DB
}

// NewKeyValueStore creates a new KeyValueStore implementation
func NewKeyValueStore(db *sql.DB) repository.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_store")

	query, args, err := sqlBuilder.Select("value").From(settingsTable).Where("key = ?", key).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return "", false, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not set: %s", key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to read key %s: %v", key, err)
		return "", false, err
	}
	return value, true, nil
}

func (s *kvStore) set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("writing key: %s=%s", key, value)

	query, args, err := sqlBuilder.Insert(settingsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		log.Error("failed to build upsert: %v", err)
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to write key %s: %v", key, err)
		return err
	}
	return nil
}

func (s *kvStore) GetInt(ctx context.Context, key string) (int, error) {
	raw, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("key %s: stored value %q is not an int: %w", key, raw, err)
	}
	return v, nil
}

func (s *kvStore) SetInt(ctx context.Context, key string, value int) error {
	return s.set(ctx, key, strconv.Itoa(value))
}

func (s *kvStore) GetBool(ctx context.Context, key string) (bool, error) {
	raw, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("key %s: stored value %q is not a bool: %w", key, raw, err)
	}
	return v, nil
}

func (s *kvStore) SetBool(ctx context.Context, key string, value bool) error {
	return s.set(ctx, key, strconv.FormatBool(value))
}

func (s *kvStore) GetString(ctx context.Context, key string) (string, bool, error) {
	return s.get(ctx, key)
}

func (s *kvStore) SetString(ctx context.Context, key string, value string) error {
	return s.set(ctx, key, value)
}
