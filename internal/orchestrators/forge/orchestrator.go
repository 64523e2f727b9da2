// Package forge implements the forge orchestrator: creating stored items and
// enhancing them with materials
package forge

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/entities/material"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/logger"
	"github.com/KirkDiggler/rpg-progression/internal/metrics"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
	"github.com/KirkDiggler/rpg-progression/internal/repositories/items"
)

// unknownKind labels metrics for requests that failed before the item was loaded
const unknownKind equipment.Kind = "unknown"

// DefaultMaxGrantXP caps the xp of one enhancement, roughly 200 levels from level 1
const DefaultMaxGrantXP uint64 = 100_000_000

// Service defines the interface for forge operations
type Service interface {
	CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error)
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error)
	EnhanceItem(ctx context.Context, input *EnhanceItemInput) (*EnhanceItemOutput, error)
	DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error)
}

// PolicySource resolves the milestone policy of an equipment kind
type PolicySource interface {
	PolicyFor(kind equipment.Kind) (equipment.Policy, error)
}

type defaultPolicies struct{}

func (defaultPolicies) PolicyFor(kind equipment.Kind) (equipment.Policy, error) {
	return equipment.PolicyFor(kind)
}

// Config holds the dependencies for the forge orchestrator
type Config struct {
	ItemRepo    items.Repository
	IDGenerator idgen.Generator

	// Random defaults to the rpg-toolkit crypto roller
	Random rng.Source
	// Policies defaults to the built in policy of each kind
	Policies PolicySource
	// Curve defaults to progression.DefaultCurve
	Curve progression.Curve
	// Metrics defaults to unregistered collectors
	Metrics *metrics.Metrics
	// MaxGrantXP caps the total xp of one enhancement; 0 uses DefaultMaxGrantXP
	MaxGrantXP uint64
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if err := c.Curve.OrDefault().Validate(); err != nil {
		vb.Field("Curve", errors.GetMessage(err))
	}

	return vb.Build()
}

type orchestrator struct {
	itemRepo items.Repository
	idGen    idgen.Generator
	random   rng.Source
	policies PolicySource
	curve    progression.Curve
	metrics  *metrics.Metrics
	maxGrant uint64
	locks    *keyedMutex
}

// NewOrchestrator creates a new forge orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	random := cfg.Random
	if random == nil {
		random = rng.Default()
	}

	policies := cfg.Policies
	if policies == nil {
		policies = defaultPolicies{}
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.New(nil)
	}

	maxGrant := cfg.MaxGrantXP
	if maxGrant == 0 {
		maxGrant = DefaultMaxGrantXP
	}

	return &orchestrator{
		itemRepo: cfg.ItemRepo,
		idGen:    cfg.IDGenerator,
		random:   rng.Locked(random),
		policies: policies,
		curve:    cfg.Curve.OrDefault(),
		metrics:  m,
		maxGrant: maxGrant,
		locks:    newKeyedMutex(),
	}, nil
}

func (o *orchestrator) CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateMaxLength("name", input.Name, 100, vb)
	if !input.Kind.IsValid() {
		vb.Fieldf("kind", "unknown equipment kind %q", input.Kind)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	policy, err := o.policies.PolicyFor(input.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve policy for %s", input.Kind)
	}

	item, err := equipment.New(o.random, &equipment.Config{
		ID:     o.idGen.Generate(),
		Name:   input.Name,
		Kind:   input.Kind,
		Policy: &policy,
		Curve:  o.curve,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to forge item")
	}

	out, err := o.itemRepo.Create(ctx, items.CreateInput{
		OwnerID: input.OwnerID,
		Item:    item.Snapshot(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store item %s", item.ID())
	}

	logger.FromContext(ctx).InfoContext(ctx, "item forged",
		"item_id", item.ID(),
		"owner_id", input.OwnerID,
		"kind", input.Kind,
		"main_stat", item.MainStatType().String(),
		"main_stat_value", item.MainStat().Value())

	return &CreateItemOutput{Item: toItem(out.Record, item)}, nil
}

func (o *orchestrator) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	unlock := o.locks.Lock(input.ItemID)
	defer unlock()

	record, item, err := o.load(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	return &GetItemOutput{Item: toItem(record, item)}, nil
}

func (o *orchestrator) ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.itemRepo.ListByOwner(ctx, items.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items for %s", input.OwnerID)
	}

	result := make([]*Item, 0, len(out.Records))
	for _, record := range out.Records {
		item, err := equipment.Restore(record.Item)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "stored item is corrupt")
		}
		result = append(result, toItem(record, item))
	}

	return &ListItemsOutput{Items: result}, nil
}

func (o *orchestrator) EnhanceItem(ctx context.Context, input *EnhanceItemInput) (out *EnhanceItemOutput, err error) {
	kind := unknownKind
	defer func() {
		o.metrics.ObserveEnhancement(kind, err)
	}()

	sources, err := o.materials(input)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.Lock(input.ItemID)
	defer unlock()

	record, item, err := o.load(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	kind = item.Kind()

	result, err := item.Feed(o.random, sources...)
	if err != nil {
		return nil, err
	}

	updated, err := o.itemRepo.Update(ctx, items.UpdateInput{Item: item.Snapshot()})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save item %s", item.ID())
	}
	record = updated.Record

	o.metrics.ObserveAdvance(kind, result)
	o.logAdvance(ctx, item, result)

	return &EnhanceItemOutput{
		Item:   toItem(record, item),
		Result: result,
	}, nil
}

func (o *orchestrator) DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	unlock := o.locks.Lock(input.ItemID)
	defer unlock()

	if _, err := o.itemRepo.Delete(ctx, items.DeleteInput{ID: input.ItemID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete item %s", input.ItemID)
	}

	logger.FromContext(ctx).InfoContext(ctx, "item deleted", "item_id", input.ItemID)

	return &DeleteItemOutput{}, nil
}

// materials validates the offered materials before any lock is taken
func (o *orchestrator) materials(input *EnhanceItemInput) ([]progression.Source, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("item_id", input.ItemID, vb)
	if len(input.Materials) == 0 {
		vb.Field("materials", "at least one material is required")
	}
	for i, m := range input.Materials {
		errors.ValidateNonNegative(fmt.Sprintf("materials[%d].xp", i), m.XP, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	sources := make([]progression.Source, 0, len(input.Materials))
	for _, m := range input.Materials {
		xp, err := progression.ValidateGrant(m.XP)
		if err != nil {
			return nil, err
		}

		id := m.ID
		if id == "" {
			id = o.idGen.Generate()
		}

		mat, err := material.New(id, m.Name, xp)
		if err != nil {
			return nil, err
		}
		sources = append(sources, mat)
	}

	total, err := progression.Total(sources...)
	if err != nil {
		return nil, err
	}
	if total > o.maxGrant {
		return nil, errors.InvalidArgumentf("materials grant %d xp, more than the %d allowed per enhancement",
			total, o.maxGrant)
	}

	return sources, nil
}

func (o *orchestrator) load(ctx context.Context, id string) (*items.Record, *equipment.Item, error) {
	out, err := o.itemRepo.Get(ctx, items.GetInput{ID: id})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load item %s", id)
	}

	item, err := equipment.Restore(out.Record.Item)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInternal, "stored item is corrupt")
	}

	return out.Record, item, nil
}

// logAdvance writes one summary line per enhancement; per level detail is debug only
func (o *orchestrator) logAdvance(ctx context.Context, item *equipment.Item, result *equipment.AdvanceResult) {
	log := logger.FromContext(ctx)

	log.InfoContext(ctx, "item enhanced",
		"item_id", item.ID(),
		"xp_applied", result.XPApplied,
		"from_level", result.FromLevel,
		"to_level", result.ToLevel,
		"unlocks", result.Unlocks(),
		"reinforcements", result.Reinforcements(),
		"xp", item.XP(),
		"required", item.Required())

	for _, lu := range result.LevelUps {
		attrs := []any{
			"item_id", item.ID(),
			"level", lu.Level,
			"main_stat_delta", lu.MainStatDelta,
		}
		if lu.Unlocked != nil {
			attrs = append(attrs, "unlocked", lu.Unlocked.Type().String())
		}
		for _, r := range lu.Reinforced {
			attrs = append(attrs, "reinforced", r.Type.String())
		}
		if lu.Exhausted {
			attrs = append(attrs, "exhausted", true)
		}
		log.DebugContext(ctx, "item leveled up", attrs...)
	}
}

func toItem(record *items.Record, item *equipment.Item) *Item {
	return &Item{
		OwnerID:   record.OwnerID,
		Item:      item,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
