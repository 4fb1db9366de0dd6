package cargo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mbeek/railyard/rail/consist"
)

// Line is a shipment ledger entry joined with its catalogue product.
type Line struct {
	Product Product
	Count   int
}

// Revenue returns the line's price times its shipped unit count.
func (l Line) Revenue() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Count)))
}

// Tracker keeps the product catalogue and the shipment ledger, both
// ordered by barcode for binary lookup.
type Tracker struct {
	products []Product
	lines    []Line

	skippedProducts  int
	skippedShipments int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddProduct inserts a product into the catalogue at its ordered
// position. A product with an already known barcode replaces the
// existing entry's title and price.
func (t *Tracker) AddProduct(p Product) {
	i, found := t.findProduct(p.Barcode)
	if found {
		t.products[i] = p
		return
	}
	t.products = append(t.products, Product{})
	copy(t.products[i+1:], t.products[i:])
	t.products[i] = p
}

// ProductByBarcode looks the barcode up in the ordered catalogue.
func (t *Tracker) ProductByBarcode(barcode int64) (Product, bool) {
	i, found := t.findProduct(barcode)
	if !found {
		return Product{}, false
	}
	return t.products[i], true
}

// findProduct returns the catalogue index of the barcode, or the index
// it would be inserted at.
func (t *Tracker) findProduct(barcode int64) (int, bool) {
	i := sort.Search(len(t.products), func(i int) bool {
		return t.products[i].Barcode >= barcode
	})
	return i, i < len(t.products) && t.products[i].Barcode == barcode
}

// MergeShipment records a shipment against the ledger. Shipments of a
// barcode missing from the catalogue are refused; two shipments of the
// same product sum their counts.
func (t *Tracker) MergeShipment(s Shipment) error {
	product, known := t.ProductByBarcode(s.Barcode)
	if !known {
		return fmt.Errorf("shipment for unknown barcode %d", s.Barcode)
	}

	i := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i].Product.Barcode >= s.Barcode
	})
	if i < len(t.lines) && t.lines[i].Product.Barcode == s.Barcode {
		t.lines[i].Count += s.Count
		return nil
	}
	t.lines = append(t.lines, Line{})
	copy(t.lines[i+1:], t.lines[i:])
	t.lines[i] = Line{Product: product, Count: s.Count}
	return nil
}

// ImportProducts reads a products file and returns the number of
// catalogue entries imported. Malformed lines are skipped and counted.
func (t *Tracker) ImportProducts(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open products file: %w", err)
	}
	defer file.Close()

	imported := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		product, err := ParseProduct(line)
		if err != nil {
			t.skippedProducts++
			continue
		}
		t.AddProduct(product)
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("failed to read products file: %w", err)
	}
	return imported, nil
}

// ImportShipments reads every file in the given directory as a shipment
// file and returns the number of records merged. Malformed lines and
// shipments for unknown barcodes are skipped and counted.
func (t *Tracker) ImportShipments(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read shipments directory: %w", err)
	}

	merged := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		n, err := t.importShipmentFile(filepath.Join(dir, entry.Name()))
		merged += n
		if err != nil {
			return merged, err
		}
	}
	return merged, nil
}

func (t *Tracker) importShipmentFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open shipment file: %w", err)
	}
	defer file.Close()

	merged := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		shipment, err := ParseShipment(line)
		if err != nil {
			t.skippedShipments++
			continue
		}
		if err := t.MergeShipment(shipment); err != nil {
			t.skippedShipments++
			continue
		}
		merged++
	}
	if err := scanner.Err(); err != nil {
		return merged, fmt.Errorf("failed to read shipment file: %w", err)
	}
	return merged, nil
}

// Products returns the catalogue in barcode order.
func (t *Tracker) Products() []Product {
	out := make([]Product, len(t.products))
	copy(out, t.products)
	return out
}

// Lines returns the shipment ledger in barcode order.
func (t *Tracker) Lines() []Line {
	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// Skipped returns how many product and shipment records were skipped
// during imports.
func (t *Tracker) Skipped() (products, shipments int) {
	return t.skippedProducts, t.skippedShipments
}

// TotalVolume returns the total number of shipped units.
func (t *Tracker) TotalVolume() int {
	total := 0
	for _, line := range t.lines {
		total += line.Count
	}
	return total
}

// TotalRevenue returns the revenue summed over the whole ledger.
func (t *Tracker) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.lines {
		total = total.Add(line.Revenue())
	}
	return total
}

// Top returns the first n ledger lines under the given ordering.
func (t *Tracker) Top(n int, less func(a, b Line) bool) []Line {
	ranked := t.Lines()
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j])
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// ByVolume orders ledger lines by shipped unit count, ascending.
func ByVolume(a, b Line) bool {
	return a.Count < b.Count
}

// ByRevenue orders ledger lines by revenue, descending.
func ByRevenue(a, b Line) bool {
	return a.Revenue().GreaterThan(b.Revenue())
}

// MaxUnits returns how many units of the given weight a freight train
// can carry within its total maximum cargo weight. 0 for passenger or
// empty trains and for non-positive unit weights.
func MaxUnits(t *consist.Train, unitWeight int) int {
	if unitWeight <= 0 {
		return 0
	}
	return t.TotalMaxWeight() / unitWeight
}
