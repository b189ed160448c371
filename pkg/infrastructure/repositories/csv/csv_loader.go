package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/ordergrid/pkg/grid"
)

// Loader handles loading grid scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Scenario is a fully resolved data set: every line item references an
// entity from the maps, and build-order shipments are split out for
// matrix filling.
type Scenario struct {
	Products            map[string]*grid.Product
	Warehouses          map[string]*grid.Warehouse
	Shipments           map[string]*grid.Shipment
	BuildOrderShipments []*grid.Shipment
	Items               []*grid.LineItem
}

// LoadScenario loads a complete scenario from a directory containing
// products.csv, warehouses.csv, shipments.csv and orders.csv.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	products, err := l.LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return nil, err
	}

	warehouses, err := l.LoadWarehouses(filepath.Join(dir, "warehouses.csv"))
	if err != nil {
		return nil, err
	}

	shipments, err := l.LoadShipments(filepath.Join(dir, "shipments.csv"))
	if err != nil {
		return nil, err
	}

	items, err := l.LoadOrders(filepath.Join(dir, "orders.csv"), products, warehouses, shipments)
	if err != nil {
		return nil, err
	}

	var buildOrders []*grid.Shipment
	for _, shipment := range shipments {
		if shipment.IsBuildOrder {
			buildOrders = append(buildOrders, shipment)
		}
	}

	return &Scenario{
		Products:            products,
		Warehouses:          warehouses,
		Shipments:           shipments,
		BuildOrderShipments: buildOrders,
		Items:               items,
	}, nil
}

// LoadProducts loads products from a CSV file. The sizes column is a
// pipe-separated list of size specs, each "group:name" or a bare name
// for ungrouped sizes.
func (l *Loader) LoadProducts(filename string) (map[string]*grid.Product, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open products file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read products CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("products CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"id", "name", "color", "department", "wholesale", "retail", "sizes"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	products := make(map[string]*grid.Product)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}

		if _, exists := products[product.ID]; exists {
			return nil, fmt.Errorf("products CSV row %d: duplicate product id %s", i+2, product.ID)
		}
		products[product.ID] = product
	}

	return products, nil
}

// LoadWarehouses loads warehouses from a CSV file
func (l *Loader) LoadWarehouses(filename string) (map[string]*grid.Warehouse, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouses file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read warehouses CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("warehouses CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"id", "name", "code", "country", "zip"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("warehouses CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	warehouses := make(map[string]*grid.Warehouse)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("warehouses CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		id := record[0]
		if id == "" {
			id = uuid.NewString()
		}

		if _, exists := warehouses[id]; exists {
			return nil, fmt.Errorf("warehouses CSV row %d: duplicate warehouse id %s", i+2, id)
		}
		warehouses[id] = &grid.Warehouse{
			ID:      id,
			Name:    record[1],
			Code:    record[2],
			Country: record[3],
			Zip:     record[4],
		}
	}

	return warehouses, nil
}

// LoadShipments loads shipment windows from a CSV file
func (l *Loader) LoadShipments(filename string) (map[string]*grid.Shipment, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open shipments file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read shipments CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("shipments CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"id", "start_date", "end_date", "is_build_order"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("shipments CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	shipments := make(map[string]*grid.Shipment)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("shipments CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		shipment, err := parseShipment(record)
		if err != nil {
			return nil, fmt.Errorf("shipments CSV row %d: %w", i+2, err)
		}

		if _, exists := shipments[shipment.ID]; exists {
			return nil, fmt.Errorf("shipments CSV row %d: duplicate shipment id %s", i+2, shipment.ID)
		}
		shipments[shipment.ID] = shipment
	}

	return shipments, nil
}

// LoadOrders loads order quantities from a CSV file and groups them into
// line items, one per product/warehouse/shipment combination. Every row
// must reference known entities and a size declared on its product. An
// orders file with only a header yields an empty item list.
func (l *Loader) LoadOrders(filename string, products map[string]*grid.Product, warehouses map[string]*grid.Warehouse, shipments map[string]*grid.Shipment) ([]*grid.LineItem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open orders file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders CSV: %w", err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("orders CSV must have a header row")
	}

	// Validate header
	expectedHeader := []string{"product_id", "warehouse_id", "shipment_id", "size", "quantity"}
	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("orders CSV header mismatch. Expected: %v, Got: %v", expectedHeader, header)
	}

	var items []*grid.LineItem
	byID := make(map[string]*grid.LineItem)

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("orders CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		product, ok := products[record[0]]
		if !ok {
			return nil, fmt.Errorf("orders CSV row %d: unknown product id %s", i+2, record[0])
		}
		warehouse, ok := warehouses[record[1]]
		if !ok {
			return nil, fmt.Errorf("orders CSV row %d: unknown warehouse id %s", i+2, record[1])
		}
		shipment, ok := shipments[record[2]]
		if !ok {
			return nil, fmt.Errorf("orders CSV row %d: unknown shipment id %s", i+2, record[2])
		}

		quantity, err := strconv.ParseInt(record[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: invalid quantity: %s", i+2, record[4])
		}
		if quantity < 0 {
			return nil, fmt.Errorf("orders CSV row %d: negative quantity: %d", i+2, quantity)
		}

		id := grid.ItemID(product, warehouse, shipment)
		item, ok := byID[id]
		if !ok {
			sizes, sizeIDs := grid.SizeQuantities(product.Sizes)
			item = &grid.LineItem{
				ID:        id,
				Product:   product,
				Warehouse: warehouse,
				Shipment:  shipment,
				Sizes:     sizes,
				SizeIDs:   sizeIDs,
			}
			byID[id] = item
			items = append(items, item)
		}

		sizeKey := record[3]
		entry, ok := item.Sizes[sizeKey]
		if !ok {
			return nil, fmt.Errorf("orders CSV row %d: size %q not declared on product %s", i+2, sizeKey, product.ID)
		}
		entry.Quantity = quantity
		item.Sizes[sizeKey] = entry
	}

	return items, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseProduct(record []string) (*grid.Product, error) {
	id := record[0]
	if id == "" {
		id = uuid.NewString()
	}

	wholesale, err := decimal.NewFromString(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid wholesale price: %s", record[4])
	}

	retail, err := decimal.NewFromString(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid retail price: %s", record[5])
	}

	sizes, err := parseSizes(record[6])
	if err != nil {
		return nil, err
	}

	return &grid.Product{
		ID:         id,
		Name:       record[1],
		Color:      record[2],
		Department: record[3],
		Wholesale:  wholesale,
		Retail:     retail,
		Sizes:      sizes,
	}, nil
}

// parseSizes splits a pipe-separated size list. Each spec is "group:name"
// or a bare "name" for a size outside any group.
func parseSizes(spec string) ([]grid.Size, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("product must declare at least one size")
	}

	var sizes []grid.Size
	seen := make(map[string]bool)
	for _, part := range strings.Split(spec, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty size spec in %q", spec)
		}

		group, name, hasGroup := strings.Cut(part, ":")
		size := grid.Size{Name: part}
		if hasGroup {
			size = grid.Size{Name: name, Group: group}
		}
		size.ID = uuid.NewString()

		key := grid.SizeKey(size.Name, size.Group)
		if seen[key] {
			return nil, fmt.Errorf("duplicate size %q", key)
		}
		seen[key] = true
		sizes = append(sizes, size)
	}

	return sizes, nil
}

func parseShipment(record []string) (*grid.Shipment, error) {
	startDate, err := time.Parse("2006-01-02", record[1])
	if err != nil {
		return nil, fmt.Errorf("invalid start_date format: %s (expected YYYY-MM-DD)", record[1])
	}

	endDate, err := time.Parse("2006-01-02", record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid end_date format: %s (expected YYYY-MM-DD)", record[2])
	}

	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end_date %s precedes start_date %s", record[2], record[1])
	}

	isBuildOrder, err := strconv.ParseBool(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid is_build_order: %s (expected true or false)", record[3])
	}

	id := record[0]
	if id == "" {
		id = record[1] + " - " + record[2]
	}

	return &grid.Shipment{
		ID:           id,
		StartDate:    startDate,
		EndDate:      endDate,
		IsBuildOrder: isBuildOrder,
	}, nil
}
