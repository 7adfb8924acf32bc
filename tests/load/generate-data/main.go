// Seeds a database with a skewed link population for load testing the
// redirect path: a few hot slugs, a warm tier and a long cold tail.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ductham08/shorten-links/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	hotCount  = 100
	warmCount = 10000
	coldCount = 1000000

	batchSize  = 5000
	numWorkers = 4
)

type dataGenerator struct {
	pool *pgxpool.Pool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	gen := &dataGenerator{pool: pool}

	if err := gen.clearData(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v\n", err)
	}

	if err := gen.insertTier(ctx, "hot", hotCount); err != nil {
		log.Fatalf("Failed to insert hot links: %v\n", err)
	}

	if err := gen.insertTier(ctx, "warm", warmCount); err != nil {
		log.Fatalf("Failed to insert warm links: %v\n", err)
	}

	if err := gen.insertColdParallel(ctx); err != nil {
		log.Fatalf("Failed to insert cold links: %v\n", err)
	}

	if err := gen.verifyData(ctx); err != nil {
		log.Printf("Warning: Data verification failed: %v\n", err)
	}
}

func (g *dataGenerator) clearData(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, "TRUNCATE links RESTART IDENTITY CASCADE")
	return err
}

func (g *dataGenerator) insertTier(ctx context.Context, tier string, count int) error {
	for start := 1; start <= count; start += batchSize {
		end := start + batchSize - 1
		if end > count {
			end = count
		}

		batch := &pgx.Batch{}
		for i := start; i <= end; i++ {
			slug := fmt.Sprintf("%s_%07d", tier, i)
			targetURL := fmt.Sprintf("https://example.com/%s/%07d", tier, i)
			batch.Queue(
				"INSERT INTO links (slug, target_url, created_at) VALUES ($1, $2, $3)",
				slug, targetURL, time.Now().Add(-time.Duration(i)*time.Minute),
			)
		}

		br := g.pool.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch exec failed: %w", err)
			}
		}
		br.Close()
	}

	log.Printf("Inserted %d %s links\n", count, tier)
	return nil
}

func (g *dataGenerator) insertColdParallel(ctx context.Context) error {
	jobs := make(chan int, numWorkers)
	errCh := make(chan error, numWorkers)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range jobs {
				end := start + batchSize - 1
				if end > coldCount {
					end = coldCount
				}

				batch := &pgx.Batch{}
				for i := start; i <= end; i++ {
					batch.Queue(
						"INSERT INTO links (slug, target_url) VALUES ($1, $2)",
						fmt.Sprintf("cold_%07d", i),
						fmt.Sprintf("https://example.com/cold/%07d", i),
					)
				}

				br := g.pool.SendBatch(ctx, batch)
				for i := 0; i < batch.Len(); i++ {
					if _, err := br.Exec(); err != nil {
						br.Close()
						errCh <- fmt.Errorf("batch exec failed: %w", err)
						return
					}
				}
				br.Close()
			}
		}()
	}

	for start := 1; start <= coldCount; start += batchSize {
		jobs <- start
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
	}

	log.Printf("Inserted %d cold links\n", coldCount)
	return nil
}

func (g *dataGenerator) verifyData(ctx context.Context) error {
	var total int64
	if err := g.pool.QueryRow(ctx, "SELECT COUNT(*) FROM links").Scan(&total); err != nil {
		return err
	}

	expected := int64(hotCount + warmCount + coldCount)
	if total != expected {
		return fmt.Errorf("expected %d links, found %d", expected, total)
	}

	log.Printf("Verified %d links\n", total)
	return nil
}
