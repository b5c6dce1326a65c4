package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aretw0/germwalk/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.TrajectoryStore using Redis.
//
// Layout per run: "<prefix><id>" holds the RunInfo JSON, "<prefix><id>:ticks"
// is a hash of tick number to the JSON array of that tick's observations,
// and "<prefix>index" is a sorted set of run IDs scored by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for runs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for runs.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "germwalk:run:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(runID string) string {
	return s.prefix + runID
}

func (s *Store) ticksKey(runID string) string {
	return s.prefix + runID + ":ticks"
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// SaveRun persists run metadata and indexes the run.
func (s *Store) SaveRun(ctx context.Context, info domain.RunInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(info.ID), data, s.ttl)

	// Score = Now + TTL so List can prune expired entries lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: info.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run to redis: %w", err)
	}
	return nil
}

// AppendTick stores one tick as a hash field of the run.
func (s *Store) AppendTick(ctx context.Context, runID string, tick int, obs []domain.Observation) error {
	exists, err := s.client.Exists(ctx, s.key(runID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check run: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("append tick %d: %w", tick, domain.ErrRunNotFound)
	}

	data, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("failed to marshal observations: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, s.ticksKey(runID), strconv.Itoa(tick), data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.ticksKey(runID), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append tick to redis: %w", err)
	}
	return nil
}

// LoadRun retrieves run metadata.
func (s *Store) LoadRun(ctx context.Context, runID string) (domain.RunInfo, error) {
	val, err := s.client.Get(ctx, s.key(runID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.RunInfo{}, domain.ErrRunNotFound
		}
		return domain.RunInfo{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var info domain.RunInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		return domain.RunInfo{}, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return info, nil
}

// LoadObservations returns every tick of the run ordered by tick, then agent.
func (s *Store) LoadObservations(ctx context.Context, runID string) ([]domain.Observation, error) {
	if _, err := s.LoadRun(ctx, runID); err != nil {
		return nil, err
	}

	fields, err := s.client.HGetAll(ctx, s.ticksKey(runID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ticks from redis: %w", err)
	}

	var out []domain.Observation
	for field, raw := range fields {
		var batch []domain.Observation
		if err := json.Unmarshal([]byte(raw), &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tick %s: %w", field, err)
		}
		out = append(out, batch...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Tick != out[j].Tick {
			return out[i].Tick < out[j].Tick
		}
		return out[i].AgentID < out[j].AgentID
	})
	return out, nil
}

// DeleteRun removes the run, its ticks and its index entry.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(runID), s.ticksKey(runID))
	pipe.ZRem(ctx, s.indexKey(), runID)

	_, err := pipe.Exec(ctx)
	return err
}

// ListRuns returns indexed runs, pruning expired index entries first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunInfo, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired runs: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(ids) == 0 {
		return []domain.RunInfo{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	runs := make([]domain.RunInfo, 0, len(vals))
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue // expired between ZRANGE and MGET
		}
		var info domain.RunInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, info)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].CreatedAt.Before(runs[j].CreatedAt) })
	return runs, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
