package exports

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ytget/ytdash/internal/model"
)

// PostgresSourceName identifies datasets loaded from PostgreSQL
const PostgresSourceName = "postgres"

// ErrMissingDatabaseURL is returned when the postgres source has no connection string
var ErrMissingDatabaseURL = errors.New("database url is empty")

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS export_records (
		year INTEGER NOT NULL,
		product TEXT NOT NULL,
		value_usd_millions DOUBLE PRECISION NOT NULL,
		market_share_percent DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (year, product)
	);`,
	`CREATE TABLE IF NOT EXISTS trade_partners (
		country TEXT PRIMARY KEY,
		exports_usd_millions DOUBLE PRECISION NOT NULL,
		imports_usd_millions DOUBLE PRECISION NOT NULL,
		balance_usd_millions DOUBLE PRECISION NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS export_trends (
		year INTEGER NOT NULL,
		category TEXT NOT NULL,
		value_usd_millions DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (year, category)
	);`,
	`CREATE TABLE IF NOT EXISTS product_complexity (
		name TEXT PRIMARY KEY,
		complexity DOUBLE PRECISION NOT NULL,
		opportunity DOUBLE PRECISION NOT NULL,
		rca DOUBLE PRECISION NOT NULL
	);`,
}

// PostgresSource reads the dataset from PostgreSQL tables
type PostgresSource struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a connection pool for connStr
func ConnectPostgres(ctx context.Context, connStr string) (*PostgresSource, error) {
	if connStr == "" {
		return nil, ErrMissingDatabaseURL
	}
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// NewPostgresSource wraps an existing pool
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Close releases the pool
func (p *PostgresSource) Close() {
	p.pool.Close()
}

// Name implements Source
func (*PostgresSource) Name() string { return PostgresSourceName }

// EnsureSchema creates the dataset tables when missing
func (p *PostgresSource) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("error creating export tables: %w", err)
		}
	}
	return nil
}

// Seed replaces the content of every table with ds
func (p *PostgresSource) Seed(ctx context.Context, ds *model.Dataset) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE export_records, trade_partners, export_trends, product_complexity`); err != nil {
		return fmt.Errorf("truncate export tables: %w", err)
	}

	copies := []struct {
		table   string
		columns []string
		rows    int
		row     func(i int) ([]any, error)
	}{
		{"export_records", []string{"year", "product", "value_usd_millions", "market_share_percent"}, len(ds.Exports), func(i int) ([]any, error) {
			r := ds.Exports[i]
			return []any{r.Year, r.Product, r.ValueUSDMillions, r.MarketSharePercent}, nil
		}},
		{"trade_partners", []string{"country", "exports_usd_millions", "imports_usd_millions", "balance_usd_millions"}, len(ds.Partners), func(i int) ([]any, error) {
			r := ds.Partners[i]
			return []any{r.Country, r.ExportsUSDMillions, r.ImportsUSDMillions, r.BalanceUSDMillions}, nil
		}},
		{"export_trends", []string{"year", "category", "value_usd_millions"}, len(ds.Trends), func(i int) ([]any, error) {
			r := ds.Trends[i]
			return []any{r.Year, r.Category, r.ValueUSDMillions}, nil
		}},
		{"product_complexity", []string{"name", "complexity", "opportunity", "rca"}, len(ds.Complexity), func(i int) ([]any, error) {
			r := ds.Complexity[i]
			return []any{r.Name, r.Complexity, r.Opportunity, r.RCA}, nil
		}},
	}
	for _, c := range copies {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromSlice(c.rows, c.row)); err != nil {
			return fmt.Errorf("unable to copy rows to %s: %w", c.table, err)
		}
	}
	return tx.Commit(ctx)
}

// SeedIfEmpty seeds the tables from src when export_records has no rows
func (p *PostgresSource) SeedIfEmpty(ctx context.Context, src Source) error {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM export_records`).Scan(&n); err != nil {
		return fmt.Errorf("count export records: %w", err)
	}
	if n > 0 {
		return nil
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return err
	}
	log.Printf("Seeding export tables from %s data", src.Name())
	return p.Seed(ctx, ds)
}

// Load implements Source
func (p *PostgresSource) Load(ctx context.Context) (*model.Dataset, error) {
	ds := &model.Dataset{Source: PostgresSourceName, LoadedAt: time.Now()}
	var err error

	ds.Exports, err = queryRows(ctx, p.pool,
		`SELECT year, product, value_usd_millions, market_share_percent FROM export_records ORDER BY year, value_usd_millions DESC`,
		func(rows pgx.Rows) (model.ExportRecord, error) {
			var r model.ExportRecord
			err := rows.Scan(&r.Year, &r.Product, &r.ValueUSDMillions, &r.MarketSharePercent)
			return r, err
		})
	if err != nil {
		return nil, err
	}

	ds.Partners, err = queryRows(ctx, p.pool,
		`SELECT country, exports_usd_millions, imports_usd_millions, balance_usd_millions FROM trade_partners ORDER BY exports_usd_millions DESC`,
		func(rows pgx.Rows) (model.TradePartner, error) {
			var r model.TradePartner
			err := rows.Scan(&r.Country, &r.ExportsUSDMillions, &r.ImportsUSDMillions, &r.BalanceUSDMillions)
			return r, err
		})
	if err != nil {
		return nil, err
	}

	ds.Trends, err = queryRows(ctx, p.pool,
		`SELECT year, category, value_usd_millions FROM export_trends ORDER BY year, category`,
		func(rows pgx.Rows) (model.TrendPoint, error) {
			var r model.TrendPoint
			err := rows.Scan(&r.Year, &r.Category, &r.ValueUSDMillions)
			return r, err
		})
	if err != nil {
		return nil, err
	}

	ds.Complexity, err = queryRows(ctx, p.pool,
		`SELECT name, complexity, opportunity, rca FROM product_complexity ORDER BY name`,
		func(rows pgx.Rows) (model.ProductComplexity, error) {
			var r model.ProductComplexity
			err := rows.Scan(&r.Name, &r.Complexity, &r.Opportunity, &r.RCA)
			return r, err
		})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func queryRows[T any](ctx context.Context, pool *pgxpool.Pool, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
