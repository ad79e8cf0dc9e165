package ports

import (
	"context"

	"statlab/domain/sample"
)

// SampleSource defines how input records are discovered and loaded from
// whatever storage backs them. Parsing of the document format happens behind
// this interface; the core only ever sees a Record.
type SampleSource interface {
	// List returns the available sample names in stable order.
	List(ctx context.Context) ([]string, error)

	// Load parses the named sample into a record.
	Load(ctx context.Context, name string) (*sample.Record, error)
}
