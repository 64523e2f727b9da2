package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/entities/character"
	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/entities/material"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/forge"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-progression/internal/progression"
	"github.com/KirkDiggler/rpg-progression/internal/render"
)

const simulatedOwner = "simulator"

var (
	simKind      string
	simSteps     int
	simXP        int64
	simSeed      uint64
	simStore     string
	simShowStats bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Forge an item and feed it materials",
	Long: `Forge a fresh item and feed it one material per step, printing every
level up. With --store none the item lives in a character's inventory; the
memory and redis stores run the same steps through the forge service.

  simulate --kind artifact --steps 10 --xp 5000 --seed 42
  simulate --store memory --metrics`,
	Args: cobra.NoArgs,
	RunE: simulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simKind, "kind", string(equipment.KindArtifact), "equipment kind (armor, artifact)")
	simulateCmd.Flags().IntVar(&simSteps, "steps", 10, "materials to feed")
	simulateCmd.Flags().Int64Var(&simXP, "xp", 5000, "xp per material")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "random seed (0 uses FORGE_SEED, then crypto randomness)")
	simulateCmd.Flags().StringVar(&simStore, "store", storeNone, "where the item lives (none, memory, redis)")
	simulateCmd.Flags().BoolVar(&simShowStats, "metrics", false, "print forge metrics when done")
}

func simulate(cmd *cobra.Command, _ []string) error {
	kind, err := parseKind(simKind)
	if err != nil {
		return err
	}
	if simSteps <= 0 {
		return errors.InvalidArgumentf("steps must be positive, got %d", simSteps)
	}
	xp, err := progression.ValidateGrant(simXP)
	if err != nil {
		return err
	}
	if xp > cfg.MaxGrantXP {
		return errors.InvalidArgumentf("xp %d is more than the %d allowed per enhancement", xp, cfg.MaxGrantXP)
	}

	seed := simSeed
	if seed == 0 {
		seed = cfg.Seed
	}
	random := randomSource(seed)

	if simStore == storeNone {
		return simulateInventory(random, kind, xp)
	}
	return simulateService(cmd, random, kind)
}

// simulateInventory feeds materials through a character's inventory
func simulateInventory(random rng.Source, kind equipment.Kind, xp uint64) error {
	ids := idgen.NewSequential("sim")

	smith, err := character.New(&character.Config{
		ID:    ids.Generate(),
		Name:  "Smith",
		Curve: policies.Curve,
	})
	if err != nil {
		return err
	}

	policy, err := policies.PolicyFor(kind)
	if err != nil {
		return err
	}
	item, err := equipment.New(random, &equipment.Config{
		ID:     ids.Generate(),
		Name:   fmt.Sprintf("Simulated %s", kind),
		Kind:   kind,
		Policy: &policy,
		Curve:  policies.Curve,
	})
	if err != nil {
		return err
	}
	if err := smith.Inventory().AddItem(item); err != nil {
		return err
	}
	if err := printItem(os.Stdout, smith.Name(), item); err != nil {
		return err
	}

	for step := 1; step <= simSteps; step++ {
		mat, err := material.New(ids.Generate(), fmt.Sprintf("Essence %d", step), xp)
		if err != nil {
			return err
		}
		if err := smith.Inventory().AddMaterial(mat); err != nil {
			return err
		}

		result, err := smith.Inventory().Enhance(random, item.ID(), mat.ID)
		if err != nil {
			return err
		}
		if _, err := smith.GrantXP(character.AttributeEnhancement, xp); err != nil {
			return err
		}
		printResult(os.Stdout, item, result)
	}

	fmt.Println()
	if err := printItem(os.Stdout, smith.Name(), item); err != nil {
		return err
	}

	skill, err := smith.Attribute(character.AttributeEnhancement)
	if err != nil {
		return err
	}
	current, required := skill.Progress(policies.Curve.OrDefault())
	bar, err := render.XPBar(skill.Level, current, required, barWidth)
	if err != nil {
		return err
	}
	fmt.Printf("%s enhancement skill\n  %s\n", smith.Name(), bar)
	return nil
}

// simulateService feeds materials through the forge service on a redis store
func simulateService(cmd *cobra.Command, random rng.Source, kind equipment.Kind) error {
	ctx := cmd.Context()

	client, cleanup, err := openStore(ctx, simStore)
	if err != nil {
		return err
	}
	defer cleanup()

	reg := prometheus.NewRegistry()
	svc, err := newService(client, random, reg, idgen.NewUUID("item"))
	if err != nil {
		return err
	}

	created, err := svc.CreateItem(ctx, &forge.CreateItemInput{
		OwnerID: simulatedOwner,
		Name:    fmt.Sprintf("Simulated %s", kind),
		Kind:    kind,
	})
	if err != nil {
		return err
	}
	item := created.Item.Item
	if err := printItem(os.Stdout, simulatedOwner, item); err != nil {
		return err
	}

	for step := 1; step <= simSteps; step++ {
		out, err := svc.EnhanceItem(ctx, &forge.EnhanceItemInput{
			ItemID:    item.ID(),
			Materials: []forge.MaterialInput{{Name: fmt.Sprintf("Essence %d", step), XP: simXP}},
		})
		if err != nil {
			return err
		}
		item = out.Item.Item
		printResult(os.Stdout, item, out.Result)
	}

	fmt.Println()
	if err := printItem(os.Stdout, simulatedOwner, item); err != nil {
		return err
	}

	if simShowStats {
		return printMetrics(reg)
	}
	return nil
}

func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}

	fmt.Println()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%s", lp.GetName(), lp.GetValue()))
			}

			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s%v %g\n", mf.GetName(), labels, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Printf("%s%v count=%d sum=%g\n", mf.GetName(), labels, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
