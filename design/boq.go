package design

import (
	"encoding/json"
	"fmt"
	"sort"
)

// A QuantityLine is one row of a bill of quantities.
type QuantityLine struct {
	Product  ProductID
	Name     string
	Count    int
	Quantity float64 // in Unit; equals Count for each-counted products
	Unit     string  // "ea" when the product has no unit
}

// BillOfQuantities tallies the document's placed elements against the
// catalog. Elements referring to unknown products are an error, since
// a bill with silently missing rows is worse than no bill.
func BillOfQuantities(d *Document, cat Catalog) ([]QuantityLine, error) {
	counts := map[ProductID]int{}
	for _, e := range d.Elements {
		if _, ok := cat.Product(e.Product); !ok {
			return nil, fmt.Errorf("element %q references unknown product %q", e.ID, e.Product)
		}
		counts[e.Product]++
	}
	lines := make([]QuantityLine, 0, len(counts))
	for id, n := range counts {
		p, _ := cat.Product(id)
		l := QuantityLine{Product: id, Name: p.Name, Count: n}
		if p.UnitLength > 0 {
			l.Quantity = float64(n) * p.UnitLength
			l.Unit = p.Unit
		} else {
			l.Quantity = float64(n)
			l.Unit = "ea"
		}
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Product < lines[j].Product })
	return lines, nil
}

// MapCatalog is a Catalog over a plain map, handy for tests and for
// catalogs loaded from JSON files.
type MapCatalog map[ProductID]Product

func (m MapCatalog) Product(id ProductID) (Product, bool) {
	p, ok := m[id]
	return p, ok
}

// CatalogFromJSON reads a product list and indexes it by ID.
func CatalogFromJSON(data []byte) (MapCatalog, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	m := MapCatalog{}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product %q has no id", p.Name)
		}
		if _, dup := m[p.ID]; dup {
			return nil, fmt.Errorf("catalog has duplicate product id %q", p.ID)
		}
		m[p.ID] = p
	}
	return m, nil
}
