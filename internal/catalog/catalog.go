// Package catalog holds the read-only metadata a simulation runs against:
// named collections with their schema, document count and estimated document
// size, grouped into a database with a fixed node count. Everything here is
// built once from configuration and never mutated afterwards, so a catalog
// can be shared by any number of concurrent simulations.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/leengari/shardsim/internal/schema"
	"github.com/leengari/shardsim/internal/sizing"
)

// UnknownCollectionError reports a lookup for a collection the database does
// not hold
type UnknownCollectionError struct {
	Database   string
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("collection %q not found in database %q", e.Collection, e.Database)
}

// InvalidCollectionError reports collection metadata that cannot describe a
// real collection
type InvalidCollectionError struct {
	Collection string
	Reason     string
}

func (e *InvalidCollectionError) Error() string {
	return fmt.Sprintf("invalid collection %q: %s", e.Collection, e.Reason)
}

// Collection describes one named collection: its schema, how many documents
// it holds and how large one document is. Immutable after construction.
type Collection struct {
	Name    string
	Schema  *schema.Node
	Count   int64
	DocSize int64
}

// NewCollection sizes the schema with the given sizer and cardinalities and
// returns the resulting descriptor.
func NewCollection(name string, node *schema.Node, count int64, sizer *sizing.Sizer, cards sizing.Cardinalities) (*Collection, error) {
	if name == "" {
		return nil, &InvalidCollectionError{Collection: name, Reason: "empty name"}
	}
	if count < 0 {
		return nil, &InvalidCollectionError{Collection: name, Reason: "negative document count"}
	}
	docSize, err := sizer.DocumentSize(node, cards)
	if err != nil {
		return nil, err
	}
	return &Collection{Name: name, Schema: node, Count: count, DocSize: docSize}, nil
}

// TotalBytes is the estimated on-disk footprint of the whole collection.
func (c *Collection) TotalBytes() int64 {
	return c.Count * c.DocSize
}

// Database is a named set of collections deployed over a fixed number of
// nodes.
type Database struct {
	Name        string
	Nodes       int
	collections map[string]*Collection
	order       []string
}

// NewDatabase returns an empty database spanning the given number of nodes.
func NewDatabase(name string, nodes int) *Database {
	return &Database{
		Name:        name,
		Nodes:       nodes,
		collections: make(map[string]*Collection),
	}
}

// AddCollection registers a collection. Re-adding a name replaces the
// previous descriptor; catalogs are built once at setup, not mutated during
// simulation.
func (db *Database) AddCollection(c *Collection) {
	if _, exists := db.collections[c.Name]; !exists {
		db.order = append(db.order, c.Name)
	}
	db.collections[c.Name] = c
}

// Collection looks up a collection by name.
func (db *Database) Collection(name string) (*Collection, error) {
	c, ok := db.collections[name]
	if !ok {
		return nil, &UnknownCollectionError{Database: db.Name, Collection: name}
	}
	return c, nil
}

// Collections returns the collections in registration order.
func (db *Database) Collections() []*Collection {
	out := make([]*Collection, 0, len(db.order))
	for _, name := range db.order {
		out = append(out, db.collections[name])
	}
	return out
}

// TotalBytes is the estimated footprint of every collection combined.
func (db *Database) TotalBytes() int64 {
	var total int64
	for _, c := range db.collections {
		total += c.TotalBytes()
	}
	return total
}

// LogSummary writes one line per collection plus a database total.
func (db *Database) LogSummary(logger *slog.Logger) {
	for _, c := range db.Collections() {
		logger.Info("collection registered",
			slog.String("database", db.Name),
			slog.String("collection", c.Name),
			slog.Int64("count", c.Count),
			slog.Int64("doc_size", c.DocSize),
			slog.Int64("total_bytes", c.TotalBytes()),
		)
	}
	logger.Info("database registered",
		slog.String("database", db.Name),
		slog.Int("nodes", db.Nodes),
		slog.Int64("total_bytes", db.TotalBytes()),
	)
}
