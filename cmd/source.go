package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"laravel-migration/internal/dialect"
	"laravel-migration/internal/schema"
)

// loadCatalog reads the catalog file when one is given, otherwise it
// introspects the configured database.
func loadCatalog(ctx context.Context, catalogPath string) (*schema.Catalog, error) {
	if catalogPath != "" {
		log.Printf("Loading catalog %s", catalogPath)
		return schema.LoadCatalog(catalogPath)
	}
	return introspectCatalog(ctx)
}

func introspectCatalog(ctx context.Context) (*schema.Catalog, error) {
	config, err := ResolveConnection()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	log.Printf("Connected to %s (%s)", config.Name, config.Driver)

	d := dialect.GetDialect(config.Driver)
	log.Printf("Using Dialect: %s\n", config.Driver)

	// Flag > config entry > connection default
	names := schemaNames
	if len(names) == 0 {
		names = config.Schemas
	}
	if len(names) == 0 {
		names = []string{""}
	}

	cat := &schema.Catalog{}
	for _, name := range names {
		log.Println("Analyzing schema...", name)
		s, err := schema.Analyze(ctx, db, d, name)
		if err != nil {
			return nil, fmt.Errorf("analyze schema %q: %w", name, err)
		}
		cat.Schemas = append(cat.Schemas, s)
	}
	return cat, nil
}
