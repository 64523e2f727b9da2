package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/orchestrators/forge"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/idgen"
)

var (
	itemTimeout time.Duration
	itemStore   string
	itemName    string
	itemKind    string
)

// itemCmd groups the commands that manage stored items
var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage stored items",
	Long:  `Item commands create, inspect, enhance and delete items kept in redis.`,
}

var createItemCmd = &cobra.Command{
	Use:   "create [owner-id]",
	Short: "Forge a new level 1 item",
	Args:  cobra.ExactArgs(1),
	RunE:  createItem,
}

var getItemCmd = &cobra.Command{
	Use:   "get [item-id]",
	Short: "Show an item",
	Args:  cobra.ExactArgs(1),
	RunE:  getItem,
}

var listItemsCmd = &cobra.Command{
	Use:   "list [owner-id]",
	Short: "List an owner's items",
	Args:  cobra.ExactArgs(1),
	RunE:  listItems,
}

var enhanceItemCmd = &cobra.Command{
	Use:   "enhance [item-id] [xp...]",
	Short: "Feed materials to an item",
	Long: `Feed one material per xp argument to an item. Examples:

  enhance item_1b4e28ba 5000
  enhance item_1b4e28ba 1200 1200 800`,
	Args: cobra.MinimumNArgs(2),
	RunE: enhanceItem,
}

var deleteItemCmd = &cobra.Command{
	Use:   "delete [item-id]",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteItem,
}

func init() {
	itemCmd.PersistentFlags().DurationVar(&itemTimeout, "timeout", 30*time.Second, "request timeout")
	itemCmd.PersistentFlags().StringVar(&itemStore, "store", storeRedis, "item store (redis, memory)")

	createItemCmd.Flags().StringVar(&itemName, "name", "", "item name")
	createItemCmd.Flags().StringVar(&itemKind, "kind", string(equipment.KindArtifact), "equipment kind (armor, artifact)")

	itemCmd.AddCommand(createItemCmd)
	itemCmd.AddCommand(getItemCmd)
	itemCmd.AddCommand(listItemsCmd)
	itemCmd.AddCommand(enhanceItemCmd)
	itemCmd.AddCommand(deleteItemCmd)
}

func parseKind(s string) (equipment.Kind, error) {
	kind, ok := equipment.KindFromString(strings.ToLower(s))
	if !ok {
		return "", errors.InvalidArgumentf("unknown equipment kind %q", s)
	}
	return kind, nil
}

// withService runs fn against a forge service on the configured store
func withService(cmd *cobra.Command, fn func(ctx context.Context, svc forge.Service) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), itemTimeout)
	defer cancel()

	client, cleanup, err := openStore(ctx, itemStore)
	if err != nil {
		return err
	}
	defer cleanup()

	svc, err := newService(client, randomSource(cfg.Seed), prometheus.NewRegistry(), idgen.NewUUID("item"))
	if err != nil {
		return err
	}

	return fn(ctx, svc)
}

func createItem(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(itemKind)
	if err != nil {
		return err
	}

	return withService(cmd, func(ctx context.Context, svc forge.Service) error {
		out, err := svc.CreateItem(ctx, &forge.CreateItemInput{
			OwnerID: args[0],
			Name:    itemName,
			Kind:    kind,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Forged %s\n\n", out.Item.Item.ID())
		return printItem(os.Stdout, out.Item.OwnerID, out.Item.Item)
	})
}

func getItem(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc forge.Service) error {
		out, err := svc.GetItem(ctx, &forge.GetItemInput{ItemID: args[0]})
		if err != nil {
			return err
		}

		if err := printItem(os.Stdout, out.Item.OwnerID, out.Item.Item); err != nil {
			return err
		}
		fmt.Printf("  updated %s\n", out.Item.UpdatedAt.Format(time.RFC3339))
		return nil
	})
}

func listItems(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc forge.Service) error {
		out, err := svc.ListItems(ctx, &forge.ListItemsInput{OwnerID: args[0]})
		if err != nil {
			return err
		}

		if len(out.Items) == 0 {
			fmt.Printf("No items for %s\n", args[0])
			return nil
		}

		fmt.Printf("%d items for %s\n", len(out.Items), args[0])
		for _, it := range out.Items {
			fmt.Println()
			if err := printItem(os.Stdout, "", it.Item); err != nil {
				return err
			}
		}
		return nil
	})
}

func enhanceItem(cmd *cobra.Command, args []string) error {
	materials := make([]forge.MaterialInput, 0, len(args)-1)
	for i, arg := range args[1:] {
		xp, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return errors.InvalidArgumentf("material %d: %q is not an xp amount", i+1, arg)
		}
		materials = append(materials, forge.MaterialInput{
			Name: fmt.Sprintf("Material %d", i+1),
			XP:   xp,
		})
	}

	return withService(cmd, func(ctx context.Context, svc forge.Service) error {
		out, err := svc.EnhanceItem(ctx, &forge.EnhanceItemInput{
			ItemID:    args[0],
			Materials: materials,
		})
		if err != nil {
			return err
		}

		printResult(os.Stdout, out.Item.Item, out.Result)
		fmt.Println()
		return printItem(os.Stdout, out.Item.OwnerID, out.Item.Item)
	})
}

func deleteItem(cmd *cobra.Command, args []string) error {
	return withService(cmd, func(ctx context.Context, svc forge.Service) error {
		if _, err := svc.DeleteItem(ctx, &forge.DeleteItemInput{ItemID: args[0]}); err != nil {
			return err
		}

		fmt.Printf("Deleted %s\n", args[0])
		return nil
	})
}
