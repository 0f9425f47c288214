package archive

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"strings"
	"sync"

	"podcast-insights/pkg/db"
	"podcast-insights/pkg/domain"
	"podcast-insights/pkg/search"
)

// Config wires the archive dependencies.
type Config struct {
	Index    *search.Index
	Postgres db.DBProvider
}

// Archiver copies indexed episodes from the MongoDB search index into
// Postgres for relational querying and long-term storage.
//
// This is a one-shot, copy-everything flow: episodes already present in
// Postgres are skipped by video ID.
type Archiver struct {
	index *search.Index
	pg    db.DBProvider
}

func NewArchiver(cfg Config) (*Archiver, error) {
	if cfg.Index == nil {
		return nil, fmt.Errorf("search index is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	return &Archiver{index: cfg.Index, pg: cfg.Postgres}, nil
}

// ArchiveEpisodes reads all episodes from the search index and inserts the
// new ones, with their insights, into Postgres.
func (a *Archiver) ArchiveEpisodes(ctx context.Context) error {
	if err := a.ensureSchema(ctx); err != nil {
		return err
	}

	episodes, err := a.index.AllEpisodes(ctx)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d episodes from index, archiving in batches...", len(episodes))

	archived, err := a.archiveBatches(ctx, episodes)
	if err != nil {
		return err
	}

	log.Printf("Archive complete: %d/%d episodes newly archived", archived, len(episodes))
	return nil
}

// archiveBatches splits episodes into batches and archives them with a small
// worker pool, failing fast on the first batch error.
func (a *Archiver) archiveBatches(ctx context.Context, episodes []domain.Episode) (int, error) {
	const batchSize = 50
	const numWorkers = 4

	type batchResult struct {
		archived int
		err      error
	}

	numBatches := (len(episodes) + batchSize - 1) / batchSize
	jobs := make(chan []domain.Episode, numBatches)
	results := make(chan batchResult, numBatches)

	for start := 0; start < len(episodes); start += batchSize {
		end := start + batchSize
		if end > len(episodes) {
			end = len(episodes)
		}
		jobs <- episodes[start:end]
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range jobs {
				archived, err := a.archiveBatch(ctx, batch)
				results <- batchResult{archived: archived, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	total := 0
	for result := range results {
		if result.err != nil {
			return total, result.err
		}
		total += result.archived
	}
	return total, nil
}

// archiveBatch inserts the episodes of one batch that are not yet archived.
func (a *Archiver) archiveBatch(ctx context.Context, batch []domain.Episode) (int, error) {
	existing, err := a.existingVideoIDs(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("check archived episodes: %w", err)
	}

	var toInsert []domain.Episode
	for _, episode := range batch {
		id := episode.VideoInfo.VideoID
		if id != "" && !existing[id] {
			toInsert = append(toInsert, episode)
		}
	}
	if len(toInsert) == 0 {
		return 0, nil
	}

	if err := a.insertEpisodesTx(ctx, toInsert); err != nil {
		return 0, fmt.Errorf("insert episode batch: %w", err)
	}
	return len(toInsert), nil
}

func (a *Archiver) ensureSchema(ctx context.Context) error {
	if a.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// video_id is the identity in both the index and the archive.
	// start_time/end_time stay nullable: insights without a matching
	// transcript segment have no time range.
	const ddl = `
CREATE TABLE IF NOT EXISTS episode (
  video_id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  processing_status TEXT NOT NULL DEFAULT '',
  insight_count INTEGER NOT NULL DEFAULT 0,
  archived_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS insight (
  id BIGSERIAL PRIMARY KEY,
  video_id TEXT NOT NULL REFERENCES episode(video_id),
  category TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL DEFAULT '',
  quote TEXT NOT NULL DEFAULT '',
  start_time DOUBLE PRECISION,
  end_time DOUBLE PRECISION,
  confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT ''
);`

	if _, err := a.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create archive tables: %w", err)
	}
	return nil
}

// existingVideoIDs checks which episodes of the batch are already archived.
func (a *Archiver) existingVideoIDs(ctx context.Context, batch []domain.Episode) (map[string]bool, error) {
	if a.pg.DB() == nil {
		return nil, fmt.Errorf("postgres DB not connected")
	}

	ids := make([]interface{}, 0, len(batch))
	for _, episode := range batch {
		if episode.VideoInfo.VideoID != "" {
			ids = append(ids, episode.VideoInfo.VideoID)
		}
	}
	if len(ids) == 0 {
		return map[string]bool{}, nil
	}

	query, args := buildVideoIDInQuery(ids)
	rows, err := a.pg.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

// buildVideoIDInQuery builds the IN query with a per-batch comment so pgx
// does not collide on prepared statements across worker goroutines.
func buildVideoIDInQuery(ids []interface{}) (string, []interface{}) {
	var hashSuffix string
	if first, ok := ids[0].(string); ok {
		hash := md5.Sum([]byte(first))
		hashSuffix = fmt.Sprintf("%x", hash[:4])
	}

	placeholders := make([]string, len(ids))
	for i := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("/* q_%d_%s */ SELECT video_id FROM episode WHERE video_id IN (%s)",
		len(ids), hashSuffix, strings.Join(placeholders, ", "))
	return query, ids
}

// insertEpisodesTx inserts episodes and their insights in one transaction.
func (a *Archiver) insertEpisodesTx(ctx context.Context, episodes []domain.Episode) error {
	tx, err := a.pg.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const episodeInsert = `
INSERT INTO episode (video_id, title, url, processing_status, insight_count)
VALUES ($1, $2, $3, $4, $5)`

	const insightInsert = `
INSERT INTO insight (video_id, category, title, content, quote, start_time, end_time, confidence, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, episode := range episodes {
		info := episode.VideoInfo
		_, err := tx.ExecContext(ctx, episodeInsert,
			info.VideoID, info.Title, info.URL,
			episode.ProcessingStatus, len(episode.Insights))
		if err != nil {
			return fmt.Errorf("insert episode %s: %w", info.VideoID, err)
		}

		for _, insight := range episode.Insights {
			_, err := tx.ExecContext(ctx, insightInsert,
				insight.VideoID, insight.Category, insight.Title,
				insight.Content, insight.Quote,
				insight.StartTime, insight.EndTime,
				insight.Confidence, strings.Join(insight.Tags, ","))
			if err != nil {
				return fmt.Errorf("insert insight for %s: %w", info.VideoID, err)
			}
		}
	}

	return tx.Commit()
}
