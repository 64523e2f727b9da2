package items

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-progression/internal/redis"
)

const (
	itemKeyPrefix    = "item:"
	ownerIndexPrefix = "item:owner:"

	// Error messages
	errItemNil      = "item cannot be nil"
	errItemIDEmpty  = "item ID cannot be empty"
	errOwnerIDEmpty = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis item repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed item repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// itemData is the storage structure serialized to Redis
type itemData struct {
	OwnerID   string              `json:"owner_id"`
	Item      *equipment.Snapshot `json:"item"`
	CreatedAt int64               `json:"created_at"`
	UpdatedAt int64               `json:"updated_at"`
}

func (d *itemData) toRecord() *Record {
	return &Record{
		OwnerID:   d.OwnerID,
		Item:      d.Item,
		CreatedAt: time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(d.UpdatedAt, 0).UTC(),
	}
}

// GetKey returns the Redis key for an item
func GetKey(itemID string) string {
	return itemKeyPrefix + itemID
}

// GetOwnerKey returns the Redis key of an owner's item index
func GetOwnerKey(ownerID string) string {
	return ownerIndexPrefix + ownerID
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument(errItemNil)
	}
	if input.Item.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	key := GetKey(input.Item.ID)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("item with ID %s already exists", input.Item.ID)
	}

	now := r.clock.Now().Unix()
	data := &itemData{
		OwnerID:   input.OwnerID,
		Item:      input.Item,
		CreatedAt: now,
		UpdatedAt: now,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, payload, 0)
	pipe.SAdd(ctx, GetOwnerKey(input.OwnerID), input.Item.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create item")
	}

	return &CreateOutput{Record: data.toRecord()}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	data, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Record: data.toRecord()}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*itemData, error) {
	result, err := r.client.Get(ctx, GetKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("item with ID %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get item")
	}

	var data itemData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal item data")
	}
	return &data, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Item == nil {
		return nil, errors.InvalidArgument(errItemNil)
	}
	if input.Item.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	existing, err := r.load(ctx, input.Item.ID)
	if err != nil {
		return nil, err
	}

	existing.Item = input.Item
	existing.UpdatedAt = r.clock.Now().Unix()

	payload, err := json.Marshal(existing)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal item data")
	}

	if err := r.client.Set(ctx, GetKey(input.Item.ID), payload, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update item %s", input.Item.ID)
	}

	return &UpdateOutput{Record: existing.toRecord()}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errItemIDEmpty)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, GetKey(input.ID))
	pipe.SRem(ctx, GetOwnerKey(existing.OwnerID), input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete item")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := GetOwnerKey(input.OwnerID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get items from index %s", indexKey)
	}
	sort.Strings(ids)

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		data, err := r.load(ctx, id)
		if err != nil {
			// Drop dangling index entries left by interrupted deletes
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "item not found, cleaning up owner index",
					"item_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get item %s", id)
		}
		records = append(records, data.toRecord())
	}

	slog.DebugContext(ctx, "listed items by owner",
		"owner_id", input.OwnerID,
		"count", len(records))

	return &ListByOwnerOutput{Records: records}, nil
}
