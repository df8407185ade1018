//go:build cgo

// Package graphcache is an optional, CLI-layer cache of resolved
// dependency edges, backed by KuzuDB. spec.md §6 states the core's
// persisted state is "None" — resolve and render stay pure functions of
// their inputs — so this package sits outside internal/resolve and
// internal/render and is never imported by them. A caller (the CLI) may
// consult it before calling resolve.Resolve for a seed it has seen before,
// and populate it afterward, to skip re-walking a file set's CST on repeat
// runs against the same commit range. Grounded on the teacher's
// internal/graph/kuzustore.go schema/DDL and exec/query helper pattern.
package graphcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/semslice/internal/model"
)

// Cache stores, per seed declaration, the set of declaration keys its
// resolution closure reached, so a repeat resolve against an unchanged
// model set can skip CST traversal entirely.
type Cache struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Open creates or attaches to a file-backed KuzuDB cache at dbPath.
func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("graphcache: create parent directory: %w", err)
	}
	db, err := kuzu.OpenDatabase(dbPath, kuzu.DefaultSystemConfig())
	if err != nil {
		return nil, fmt.Errorf("graphcache: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("graphcache: open connection: %w", err)
	}
	c := &Cache{db: db, conn: conn}
	if err := c.initSchema(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the underlying KuzuDB connection and database.
func (c *Cache) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	if c.db != nil {
		c.db.Close()
	}
	return nil
}

var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Seed(
		key STRING,
		file_path STRING,
		qualified_name STRING,
		model_fingerprint STRING,
		PRIMARY KEY(key)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Decl(
		key STRING,
		file_path STRING,
		qualified_name STRING,
		kind STRING,
		PRIMARY KEY(key)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM Seed TO Decl)`,
}

func (c *Cache) initSchema() error {
	for _, stmt := range ddlStatements {
		res, err := c.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("graphcache: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// seedKey derives a stable cache key for a seed declaration, keyed by its
// identity and a model-set fingerprint so the cache never serves a closure
// computed against a now-stale set of source files.
func seedKey(seed model.DeclKey, fingerprint string) string {
	return fingerprint + "|" + seed.File + "|" + seed.Qualified + "|" + string(seed.Kind)
}

// Lookup returns the cached closure's declaration keys for seed under the
// given model fingerprint, or (nil, false) on a cache miss.
func (c *Cache) Lookup(ctx context.Context, seed model.DeclKey, fingerprint string) ([]model.DeclKey, bool) {
	key := seedKey(seed, fingerprint)
	rows, err := c.query(
		`MATCH (s:Seed {key: $key})-[:DEPENDS_ON]->(d:Decl)
		 RETURN d.file_path, d.qualified_name, d.kind`,
		map[string]any{"key": key},
	)
	if err != nil || len(rows) == 0 {
		return nil, false
	}
	out := make([]model.DeclKey, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.DeclKey{
			File:      toString(r[0]),
			Qualified: toString(r[1]),
			Kind:      model.DeclKind(toString(r[2])),
		})
	}
	return out, true
}

// Store records ctx's resolved closure against seed under fingerprint,
// overwriting any prior entry for the same key.
func (c *Cache) Store(ctx context.Context, seed model.DeclKey, fingerprint string, closure []model.ResolvedDecl) error {
	key := seedKey(seed, fingerprint)
	if err := c.exec(`MATCH (s:Seed {key: $key})-[r:DEPENDS_ON]->() DELETE r`, map[string]any{"key": key}); err != nil {
		return err
	}
	if err := c.exec(
		`MERGE (s:Seed {key: $key}) SET s.file_path = $fp, s.qualified_name = $qn, s.model_fingerprint = $fg`,
		map[string]any{"key": key, "fp": seed.File, "qn": seed.Qualified, "fg": fingerprint},
	); err != nil {
		return err
	}
	for _, rd := range closure {
		dk := rd.Key()
		if err := c.exec(
			`MERGE (d:Decl {key: $dkey}) SET d.file_path = $fp, d.qualified_name = $qn, d.kind = $kind`,
			map[string]any{"dkey": declKeyString(dk), "fp": dk.File, "qn": dk.Qualified, "kind": string(dk.Kind)},
		); err != nil {
			return err
		}
		if err := c.exec(
			`MATCH (s:Seed {key: $key}), (d:Decl {key: $dkey}) CREATE (s)-[:DEPENDS_ON]->(d)`,
			map[string]any{"key": key, "dkey": declKeyString(dk)},
		); err != nil {
			return err
		}
	}
	return nil
}

func declKeyString(dk model.DeclKey) string {
	return dk.File + "|" + dk.Qualified + "|" + string(dk.Kind)
}

func (c *Cache) exec(cypher string, params map[string]any) error {
	stmt, err := c.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("graphcache: prepare: %w", err)
	}
	defer stmt.Close()
	res, err := c.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("graphcache: execute: %w", err)
	}
	res.Close()
	return nil
}

func (c *Cache) query(cypher string, params map[string]any) ([][]any, error) {
	stmt, err := c.conn.Prepare(cypher)
	if err != nil {
		return nil, fmt.Errorf("graphcache: prepare: %w", err)
	}
	defer stmt.Close()
	res, err := c.conn.Execute(stmt, params)
	if err != nil {
		return nil, fmt.Errorf("graphcache: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("graphcache: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("graphcache: tuple values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
