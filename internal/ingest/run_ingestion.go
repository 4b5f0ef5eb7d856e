package ingest

import (
	"context"
	"fmt"
	"time"

	"nbrates/internal/adapters"
	"nbrates/internal/domain"

	"github.com/sirupsen/logrus"
)

// RunIngestion executes one ingestion cycle: fetch the feed, parse it,
// resolve currency identities and write one batch of rate snapshots.
func RunIngestion(
	ctx context.Context,
	execID string,
	source adapters.RateSource,
	resolver *Resolver,
	snapshots adapters.SnapshotRepository,
	window time.Duration,
) error {
	// STEP 1: fetching raw payload from the national bank feed.
	// A transport failure only costs us this cycle, the scheduler will fire
	// again; so we log and end the cycle instead of surfacing an error.
	payload, err := source.Fetch(ctx)
	if err != nil {
		logrus.Warnf("Skipping ingestion cycle, feed unavailable: %v; execID: %s", err, execID)
		return nil
	}
	if len(payload) == 0 {
		logrus.Infof("Nothing to ingest this time; execID: %s", execID)
		return nil
	}

	// STEP 2: parsing payload into typed records.
	// Unlike a transport failure, a malformed payload is fatal for the cycle.
	records, err := ParsePayload(payload)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logrus.Infof("Feed returned an empty list; execID: %s", execID)
		return nil
	}

	// STEP 3: resolving identities one record at a time, each its own
	// commit. Identity inserts land before the snapshot batch, so a failure
	// further down never loses an identity.
	countCreated := 0
	for i := range records {
		cur, created, resolveErr := resolver.Resolve(ctx, records[i])
		if resolveErr != nil {
			return resolveErr
		}
		records[i].CurrencyID = cur.ID
		if created {
			countCreated++
		}
	}

	// STEP 4: writing all snapshots in one transaction. This commit is the
	// point where the cycle's data becomes visible.
	batch := buildSnapshots(records, time.Now().UTC(), window)
	written, err := snapshots.InsertBatch(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to write rate snapshots: %w", err)
	}

	logrus.Infof("%d rate snapshots written, %d new currencies; execID: %s", len(written), countCreated, execID)
	return nil
}

// buildSnapshots stamps the whole batch with a single effectiveAt so every
// currency in one cycle shares the same observation time and validity
// window.
func buildSnapshots(records []Record, effectiveAt time.Time, window time.Duration) []domain.RateSnapshot {
	batch := make([]domain.RateSnapshot, 0, len(records))
	for _, rec := range records {
		batch = append(batch, domain.RateSnapshot{
			CurrencyID:  rec.CurrencyID,
			Rate:        rec.Rate,
			EffectiveAt: effectiveAt,
			ValidUntil:  effectiveAt.Add(window),
		})
	}
	return batch
}
