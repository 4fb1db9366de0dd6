package cargo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedLine reports a text record that cannot be parsed into a
// product or shipment.
var ErrMalformedLine = errors.New("malformed record")

// Product is one catalogue entry, identified by barcode.
type Product struct {
	Barcode int64
	Title   string
	Price   decimal.Decimal
}

// ParseProduct parses a "barcode, title, price" record.
func ParseProduct(line string) (Product, error) {
	fields := splitRecord(line)
	if len(fields) < 3 {
		return Product{}, fmt.Errorf("%w: product needs barcode, title and price: %q", ErrMalformedLine, line)
	}

	barcode, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Product{}, fmt.Errorf("%w: bad barcode %q", ErrMalformedLine, fields[0])
	}
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return Product{}, fmt.Errorf("%w: bad price %q", ErrMalformedLine, fields[2])
	}

	return Product{Barcode: barcode, Title: fields[1], Price: price}, nil
}

func (p Product) String() string {
	return fmt.Sprintf("%d/%s/%s", p.Barcode, p.Title, p.Price.StringFixed(2))
}

// Shipment is a number of units of one product moved by the fleet.
type Shipment struct {
	Barcode int64
	Count   int
}

// ParseShipment parses a "barcode, count" record.
func ParseShipment(line string) (Shipment, error) {
	fields := splitRecord(line)
	if len(fields) < 2 {
		return Shipment{}, fmt.Errorf("%w: shipment needs barcode and count: %q", ErrMalformedLine, line)
	}

	barcode, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Shipment{}, fmt.Errorf("%w: bad barcode %q", ErrMalformedLine, fields[0])
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return Shipment{}, fmt.Errorf("%w: bad count %q", ErrMalformedLine, fields[1])
	}

	return Shipment{Barcode: barcode, Count: count}, nil
}

// splitRecord splits a comma-separated record and trims each field.
func splitRecord(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, strings.TrimSpace(part))
	}
	return fields
}
