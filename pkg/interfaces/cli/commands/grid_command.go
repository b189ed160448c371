package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/ordergrid/pkg/grid"
	"github.com/vsinha/ordergrid/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/ordergrid/pkg/infrastructure/settings"
	"github.com/vsinha/ordergrid/pkg/interfaces/cli/output"
)

// Config holds configuration for the grid command
type Config struct {
	ScenarioDir  string
	SettingsFile string
	Format       string
	Edit         string
	Verbose      bool
	Help         bool
}

// GridCommand handles the main grid execution logic
type GridCommand struct {
	config Config
}

// NewGridCommand creates a new grid command with the given configuration
func NewGridCommand(config Config) *GridCommand {
	return &GridCommand{
		config: config,
	}
}

// Execute runs the grid command
func (c *GridCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.ScenarioDir == "" {
		return fmt.Errorf("validation error: must specify a -scenario directory")
	}

	viewSettings := settings.Default()
	if c.config.SettingsFile != "" {
		var err error
		viewSettings, err = settings.Load(c.config.SettingsFile)
		if err != nil {
			return fmt.Errorf("error loading settings: %w", err)
		}
	}

	if fixed, changed := grid.FixupLevelItems(viewSettings); changed {
		if c.config.Verbose {
			fmt.Println("Level configuration violated an ordering rule and was repaired")
		}
		viewSettings.LevelItems = fixed
	}

	// Load scenario data from CSV files
	csvLoader := csv.NewLoader()
	scenario, err := csvLoader.LoadScenario(c.config.ScenarioDir)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded successfully:\n")
		fmt.Printf("  Products: %d\n", len(scenario.Products))
		fmt.Printf("  Warehouses: %d\n", len(scenario.Warehouses))
		fmt.Printf("  Shipments: %d\n", len(scenario.Shipments))
		fmt.Printf("  Line Items: %d\n", len(scenario.Items))
		fmt.Println()
	}

	items := grid.PrepareItems(scenario.Items, viewSettings, scenario.BuildOrderShipments)
	tree, top := grid.BuildTree(items, viewSettings)

	if c.config.Verbose {
		fmt.Printf("Grouped %d items into %d nodes across %d top-level groups\n\n",
			len(items), tree.Len(), len(top.Items))
	}

	if c.config.Edit != "" {
		if err := c.applyEdit(tree); err != nil {
			return err
		}
	}

	return output.Render(os.Stdout, tree, top.Items, c.config.Format)
}

// applyEdit parses a node:sizeKey:quantity spec and applies it to the tree.
func (c *GridCommand) applyEdit(tree *grid.Tree) error {
	parts := strings.SplitN(c.config.Edit, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("invalid edit %q (expected node:sizeKey:quantity)", c.config.Edit)
	}

	node, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid edit node id: %s", parts[0])
	}

	quantity, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid edit quantity: %s", parts[2])
	}

	if !tree.ApplyQuantityEdit(grid.NodeID(node), parts[1], quantity) {
		return fmt.Errorf("edit rejected: node %d has no editable size %q", node, parts[1])
	}

	if c.config.Verbose {
		fmt.Printf("Applied edit: node %d size %q set to %d\n\n", node, parts[1], quantity)
	}
	return nil
}

// showHelp displays the help message
func (c *GridCommand) showHelp() {
	fmt.Printf(`Order Grid CLI - Hierarchical grouping and aggregation for retail orders

USAGE:
    ordergrid -scenario <directory> [options]

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -settings <file>    Path to a YAML view-settings file (optional)
    -format <fmt>       Output format: text, json (default: text)
    -edit <spec>        Apply a quantity edit before rendering, as node:sizeKey:qty
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── products.csv    # Products with declared sizes
    ├── warehouses.csv  # Warehouses
    ├── shipments.csv   # Shipment windows
    └── orders.csv      # Ordered quantities per size

CSV FILE FORMATS:

products.csv:
    id,name,color,department,wholesale,retail,sizes
    P1,Alpha Tee,Black,Menswear,2.00,5.00,Men:S|Men:M|Women:S

warehouses.csv:
    id,name,code,country,zip
    W1,East,EST,US,10001

shipments.csv:
    id,start_date,end_date,is_build_order
    S1,2026-01-01,2026-01-31,false

orders.csv:
    product_id,warehouse_id,shipment_id,size,quantity
    P1,W1,S1,Men - S,10

SETTINGS FILE (YAML):
    levels:
      - level: product
        visible: true
      - level: shipment
        visible: true
      - level: warehouse
        visible: false
      - level: sizeGroup
        visible: false
    shipmentsMode: LINE_ITEMS
    flattenSizes: false
    useSizeGroups: false
    allDeliveries: false

EXAMPLES:
    # Render a scenario with default settings
    ordergrid -scenario examples/retail_basic

    # Group by warehouse then product, as JSON
    ordergrid -scenario examples/retail_basic -settings by_warehouse.yaml -format json

    # Edit a leaf quantity and show the reaggregated tree
    ordergrid -scenario examples/retail_basic -edit "3:Men - S:25"
`)
}
