// Command railyard models rail consists and runs shunting operations on
// yard fixtures. It ships three subcommands: demo replays a scripted
// shunting sequence on a fixture, yards lists the available fixtures,
// and report prints cargo statistics from product and shipment files.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/mbeek/railyard/cargo"
	"github.com/mbeek/railyard/rail/depot"
	"github.com/mbeek/railyard/rail/fleet"
	"github.com/mbeek/railyard/rail/registry"
)

const (
	// Version is the current version of the railyard tool.
	Version = "1.0.0"

	// AppName is the display name used in command output.
	AppName = "Railyard"
)

func main() {
	// Load .env file if present. Missing files are fine, we fall back
	// to process environment and flag defaults.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	cmd := &cli.Command{
		Name:    "railyard",
		Usage:   "model rail consists and shunting operations",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "fixtures",
				Value: defaultFixtureDir(),
				Usage: "directory containing yard fixture files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "run a scripted shunting demonstration on a yard fixture",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "fixture",
						Usage: "fixture name to load (defaults to the yard default)",
					},
				},
				Action: runDemo,
			},
			{
				Name:   "yards",
				Usage:  "list the available yard fixtures",
				Action: runYards,
			},
			{
				Name:  "report",
				Usage: "print cargo statistics from product and shipment files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "products",
						Value: "data/products.txt",
						Usage: "product catalogue file",
					},
					&cli.StringFlag{
						Name:  "shipments",
						Value: "data/shipments",
						Usage: "directory of shipment files",
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 5,
						Usage: "number of products per ranking",
					},
				},
				Action: runReport,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// defaultFixtureDir resolves the fixture directory from the environment,
// falling back to the fixtures directory next to the binary.
func defaultFixtureDir() string {
	if dir := os.Getenv("FIXTURE_DIR"); dir != "" {
		return dir
	}
	return "fixtures"
}

func runDemo(ctx context.Context, cmd *cli.Command) error {
	fixtures, err := depot.NewManager(cmd.String("fixtures"))
	if err != nil {
		return fmt.Errorf("failed to open fixture directory: %w", err)
	}
	svc := fleet.NewService(registry.NewManager(), fixtures)

	yard, err := svc.CreateYard(ctx, cmd.String("fixture"))
	if err != nil {
		return fmt.Errorf("failed to create yard: %w", err)
	}

	fmt.Printf("%s v%s\n", AppName, Version)
	fmt.Printf("Yard %q loaded as session %s\n\n", yard.FixtureName, yard.ID)

	trains, err := svc.ListTrains(ctx, yard.ID)
	if err != nil {
		return err
	}
	fmt.Println("Initial consists:")
	for _, t := range trains {
		fmt.Printf("  %s\n", t.Rendered)
	}

	// Couple every pooled wagon to the rear of the first train that
	// will take it, reporting policy rejections along the way.
	if len(yard.PoolWagonIDs) > 0 {
		fmt.Println("\nCoupling pooled wagons:")
		pool := append([]int(nil), yard.PoolWagonIDs...)
		sort.Ints(pool)
		for _, id := range pool {
			placed := false
			for _, t := range trains {
				res, err := svc.Attach(ctx, yard.ID, t.Name, id, 0)
				if err != nil {
					return err
				}
				if res.Applied {
					fmt.Printf("  wagon %d -> %s\n", id, t.Name)
					placed = true
					break
				}
			}
			if !placed {
				fmt.Printf("  wagon %d stays in the pool\n", id)
			}
		}
	}

	// Shuffle a wagon between the first two trains, then split the
	// first train's tail off onto the second.
	trains, err = svc.ListTrains(ctx, yard.ID)
	if err != nil {
		return err
	}
	if donor, receiver, ok := transferPair(trains); ok {
		fmt.Printf("\nTransferring between %s and %s:\n", donor.Name, receiver.Name)

		if id, ok := lastWagonID(donor); ok {
			res, err := svc.MoveWagon(ctx, yard.ID, donor.Name, receiver.Name, id)
			if err != nil {
				return err
			}
			fmt.Printf("  move wagon %d: %s\n", id, shuntVerdict(res))
		}

		res, err := svc.Split(ctx, yard.ID, donor.Name, receiver.Name, 2)
		if err != nil {
			return err
		}
		fmt.Printf("  split at position 2: %s\n", shuntVerdict(res))
	}

	first := trains[0].Name
	if _, err := svc.ReverseTrain(ctx, yard.ID, first); err != nil {
		return err
	}
	fmt.Printf("\nReversed %s.\n", first)

	trains, err = svc.ListTrains(ctx, yard.ID)
	if err != nil {
		return err
	}
	fmt.Println("\nFinal consists:")
	for _, t := range trains {
		fmt.Printf("  %s\n", t.Rendered)
	}
	return nil
}

// transferPair picks the donor and receiver for the demo transfer: the
// first train that has wagons to give and the next train that could take
// them (same kind, or empty and open to any kind).
func transferPair(trains []*fleet.TrainInfo) (donor, receiver *fleet.TrainInfo, ok bool) {
	for i, d := range trains {
		if d.NumberOfWagons == 0 {
			continue
		}
		for _, r := range trains[i+1:] {
			if r.Kind == d.Kind || r.Kind == "" {
				return d, r, true
			}
		}
	}
	return nil, nil, false
}

// lastWagonID returns the id of the rearmost wagon in the consist.
func lastWagonID(t *fleet.TrainInfo) (int, bool) {
	if len(t.WagonIDs) == 0 {
		return 0, false
	}
	return t.WagonIDs[len(t.WagonIDs)-1], true
}

// shuntVerdict renders a shunt result for demo output.
func shuntVerdict(res *fleet.ShuntResult) string {
	if res.Applied {
		return "applied"
	}
	return "rejected (" + res.Reason + ")"
}

func runYards(ctx context.Context, cmd *cli.Command) error {
	fixtures, err := depot.NewManager(cmd.String("fixtures"))
	if err != nil {
		return fmt.Errorf("failed to open fixture directory: %w", err)
	}

	infos, err := fixtures.ListYards()
	if err != nil {
		return fmt.Errorf("failed to list yards: %w", err)
	}
	if len(infos) == 0 {
		fmt.Println("No yard fixtures found.")
		return nil
	}

	fmt.Printf("Found %d yard fixture(s):\n\n", len(infos))
	for _, info := range infos {
		fmt.Printf("%s (%s)\n", info.Name, info.Filename)
		if info.Description != "" {
			fmt.Printf("  %s\n", info.Description)
		}
		fmt.Printf("  %d train(s), %d wagon(s)\n", info.Trains, info.Wagons)
	}
	return nil
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	tracker := cargo.NewTracker()

	imported, err := tracker.ImportProducts(cmd.String("products"))
	if err != nil {
		return fmt.Errorf("failed to import products: %w", err)
	}
	merged, err := tracker.ImportShipments(cmd.String("shipments"))
	if err != nil {
		return fmt.Errorf("failed to import shipments: %w", err)
	}

	fmt.Printf("%s cargo report\n", AppName)
	fmt.Printf("Imported %d product(s), merged %d shipment line(s)", imported, merged)
	skippedProducts, skippedShipments := tracker.Skipped()
	if total := skippedProducts + skippedShipments; total > 0 {
		fmt.Printf(", skipped %d malformed or unknown record(s)", total)
	}
	fmt.Println()

	fmt.Printf("\nTotal volume:  %d unit(s)\n", tracker.TotalVolume())
	fmt.Printf("Total revenue: %s\n", tracker.TotalRevenue().StringFixed(2))

	n := int(cmd.Int("top"))
	fmt.Printf("\n%s\n", rankingHeader("Worst sales volume", n))
	for _, line := range tracker.Top(n, cargo.ByVolume) {
		fmt.Printf("  %s: %d unit(s)\n", line.Product.String(), line.Count)
	}

	fmt.Printf("\n%s\n", rankingHeader("Best sales revenue", n))
	for _, line := range tracker.Top(n, cargo.ByRevenue) {
		fmt.Printf("  %s: %s\n", line.Product.String(), line.Revenue().StringFixed(2))
	}
	return nil
}

// rankingHeader builds a titled, underlined heading for a top-N listing.
func rankingHeader(title string, n int) string {
	h := fmt.Sprintf("%s (top %d):", title, n)
	return h + "\n" + strings.Repeat("-", len(h))
}
