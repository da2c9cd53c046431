// Package sku generates stock-keeping-unit codes for products.
//
// Codes have the shape {NAME3}-C{CC}-{RRR} (or -V{VV} appended for variants):
// the first three runes of the product name upper-cased, a two-digit category
// segment, and a random three-digit suffix. The suffix gives no uniqueness
// guarantee on its own — the DB unique index on products.sku is the backstop,
// and a collision there must surface as a retryable failure.
package sku

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Generator produces SKUs from an injectable random source so tests can pin
// the suffix.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded from the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Generator backed by rnd. Used by tests.
func NewWithSource(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate builds a SKU for a product without a variant.
func (g *Generator) Generate(productName string, categoryID uint) string {
	return fmt.Sprintf("%s-C%02d-%03d", namePrefix(productName), categoryID, g.suffix())
}

// GenerateVariant builds a SKU with a -V{VV} variant segment appended.
func (g *Generator) GenerateVariant(productName string, categoryID, variantID uint) string {
	return fmt.Sprintf("%s-V%02d", g.Generate(productName, categoryID), variantID)
}

func (g *Generator) suffix() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Intn(1000)
}

// namePrefix takes the first three runes of the name, upper-cased.
// Names shorter than three runes are used as-is, no padding.
func namePrefix(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
