// Package catalog serves the trait compendium: the named examples of each
// purchasable category, tagged for eligibility filtering.
package catalog

import (
	"context"

	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
)

//go:generate mockgen -destination=mock/mock_client.go -package=mockcatalog -source=catalog.go

// Client looks up trait examples by category and name.
type Client interface {
	// ListExamples returns every example in a category.
	ListExamples(ctx context.Context, category string) ([]rulebook.Example, error)

	// GetExample returns one example by category and exact name.
	GetExample(ctx context.Context, category, name string) (*rulebook.Example, error)
}
