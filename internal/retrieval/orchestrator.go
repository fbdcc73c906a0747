package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/HafizAhmed223/backend/internal/archive"
	"github.com/HafizAhmed223/backend/internal/extractor"
	"github.com/HafizAhmed223/backend/internal/fetcher"
	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/internal/reviewcache"
	"github.com/HafizAhmed223/backend/pkg/failure"
	"github.com/HafizAhmed223/backend/pkg/hashutil"
)

/*
 Orchestrator is the sole control-plane authority of review retrieval.

 Cache-aside guarantees:
 - The Orchestrator is the ONLY component that decides whether an
   identifier is served from cache or fetched upstream.
 - A live cache entry never triggers network I/O.
 - A failed fetch never leaves a partial cache entry behind; the miss
   stays a miss.
 - Concurrent misses for the same identifier collapse into one upstream
   fetch (single flight); every waiter shares that fetch's outcome.
 - An empty review list is a valid outcome and is cached like any other.

 Paired retrieval:
 - Each side is checked against the cache independently; only missing
   sides are fetched, concurrently when both are missing.
 - Each side's cache write commits as that side completes. A failure on
   one side fails the whole pair but never rolls back the other side's
   committed write.

 Metadata emission is observational only and MUST NOT influence
 caching, fetching, or failure decisions.
*/

// Snapshot filenames are content-addressed with BLAKE3.
const archiveHashAlgo = hashutil.HashAlgoBLAKE3

type Orchestrator struct {
	store        reviewcache.Store
	pageFetcher  fetcher.Fetcher
	engine       extractor.ReviewExtractor
	archiveSink  archive.Sink
	metadataSink metadata.MetadataSink
	pageTemplate string
	archiveDir   string
	group        singleflight.Group
}

// NewOrchestrator wires the retrieval pipeline. pageTemplate must carry
// exactly one %s placeholder, which each product identifier fills to form
// the upstream page URL. The returned Orchestrator is safe for concurrent
// use and must not be copied.
func NewOrchestrator(
	store reviewcache.Store,
	pageFetcher fetcher.Fetcher,
	engine extractor.ReviewExtractor,
	archiveSink archive.Sink,
	metadataSink metadata.MetadataSink,
	pageTemplate string,
	archiveDir string,
) *Orchestrator {
	return &Orchestrator{
		store:        store,
		pageFetcher:  pageFetcher,
		engine:       engine,
		archiveSink:  archiveSink,
		metadataSink: metadataSink,
		pageTemplate: pageTemplate,
		archiveDir:   archiveDir,
	}
}

// RetrieveReviews returns the review list for one product identifier,
// from cache when a live entry exists, otherwise by fetching and
// extracting the product page and caching the outcome.
func (o *Orchestrator) RetrieveReviews(
	ctx context.Context,
	productID string,
) ([]extractor.Review, failure.ClassifiedError) {
	callerMethod := "Orchestrator.RetrieveReviews"

	if err := validateProductID(productID); err != nil {
		o.recordRetrievalError(callerMethod, productID, err)
		return nil, err
	}

	if reviews, found := o.store.Get(productID); found {
		o.metadataSink.RecordCacheLookup(productID, true)
		return reviews, nil
	}
	o.metadataSink.RecordCacheLookup(productID, false)

	return o.fetchThroughFlight(ctx, productID)
}

// RetrievePair returns the review lists for two product identifiers,
// fetching whichever sides have no live cache entry. Both sides of the
// response are always keyed to the identifier they were requested under.
func (o *Orchestrator) RetrievePair(
	ctx context.Context,
	productIDA string,
	productIDB string,
) (PairResult, failure.ClassifiedError) {
	callerMethod := "Orchestrator.RetrievePair"

	if err := validateProductID(productIDA); err != nil {
		o.recordRetrievalError(callerMethod, productIDA, err)
		return PairResult{}, err
	}
	if err := validateProductID(productIDB); err != nil {
		o.recordRetrievalError(callerMethod, productIDB, err)
		return PairResult{}, err
	}

	reviewsA, foundA := o.store.Get(productIDA)
	o.metadataSink.RecordCacheLookup(productIDA, foundA)
	reviewsB, foundB := o.store.Get(productIDB)
	o.metadataSink.RecordCacheLookup(productIDB, foundB)

	switch {
	case !foundA && !foundB:
		// Fork-join. Both fetches run to completion even when one fails,
		// so the surviving side's cache write stays committed.
		var group errgroup.Group
		group.Go(func() error {
			fetched, fetchErr := o.fetchThroughFlight(ctx, productIDA)
			if fetchErr != nil {
				return fetchErr
			}
			reviewsA = fetched
			return nil
		})
		group.Go(func() error {
			fetched, fetchErr := o.fetchThroughFlight(ctx, productIDB)
			if fetchErr != nil {
				return fetchErr
			}
			reviewsB = fetched
			return nil
		})
		if err := group.Wait(); err != nil {
			return PairResult{}, o.classifyFlightError(productIDA+","+productIDB, err)
		}

	case !foundA:
		fetched, fetchErr := o.fetchThroughFlight(ctx, productIDA)
		if fetchErr != nil {
			return PairResult{}, fetchErr
		}
		reviewsA = fetched

	case !foundB:
		fetched, fetchErr := o.fetchThroughFlight(ctx, productIDB)
		if fetchErr != nil {
			return PairResult{}, fetchErr
		}
		reviewsB = fetched
	}

	return NewPairResult(
		NewProductReviews(productIDA, reviewsA),
		NewProductReviews(productIDB, reviewsB),
	), nil
}

// fetchThroughFlight collapses concurrent misses for one identifier into
// a single upstream fetch whose outcome every waiter shares. The flight
// key is forgotten once the fetch completes, so a later miss starts a
// fresh fetch.
func (o *Orchestrator) fetchThroughFlight(
	ctx context.Context,
	productID string,
) ([]extractor.Review, failure.ClassifiedError) {
	value, err, _ := o.group.Do(productID, func() (any, error) {
		reviews, fetchErr := o.fetchExtractStore(ctx, productID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return reviews, nil
	})
	if err != nil {
		return nil, o.classifyFlightError(productID, err)
	}

	reviews, ok := value.([]extractor.Review)
	if !ok {
		retrievalErr := &RetrievalError{
			Message:   fmt.Sprintf("flight for %s yielded %T", productID, value),
			Retryable: false,
			Cause:     ErrCauseUnexpectedResult,
		}
		o.recordRetrievalError("Orchestrator.fetchThroughFlight", productID, retrievalErr)
		return nil, retrievalErr
	}
	return reviews, nil
}

// fetchExtractStore is the miss path: fetch the product page, snapshot
// it, extract its reviews and commit them to the cache. The cache write
// happens only after a successful fetch; extraction itself cannot fail.
func (o *Orchestrator) fetchExtractStore(
	ctx context.Context,
	productID string,
) ([]extractor.Review, failure.ClassifiedError) {
	targetURL := fmt.Sprintf(o.pageTemplate, productID)

	fetchResult, err := o.pageFetcher.Fetch(ctx, fetcher.NewFetchParam(targetURL, productID))
	if err != nil {
		return nil, err
	}

	// Snapshot failures are recorded by the sink and never fail retrieval
	_, _ = o.archiveSink.Write(o.archiveDir, productID, fetchResult.Body(), archiveHashAlgo)

	reviews := o.engine.Extract(targetURL, fetchResult.Body())
	o.store.Set(productID, reviews)

	return reviews, nil
}

// classifyFlightError restores the classified error a flight or fork-join
// closure surfaced as a plain error.
func (o *Orchestrator) classifyFlightError(productID string, err error) failure.ClassifiedError {
	var classified failure.ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	retrievalErr := &RetrievalError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ErrCauseUnexpectedResult,
	}
	o.recordRetrievalError("Orchestrator.classifyFlightError", productID, retrievalErr)
	return retrievalErr
}

func (o *Orchestrator) recordRetrievalError(callerMethod string, productID string, err failure.ClassifiedError) {
	var retrievalError *RetrievalError
	if errors.As(err, &retrievalError) {
		o.metadataSink.RecordError(
			time.Now(),
			"retrieval",
			callerMethod,
			mapRetrievalErrorToMetadataCause(retrievalError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrProductID, productID),
			},
		)
	}
}

func validateProductID(productID string) failure.ClassifiedError {
	if strings.TrimSpace(productID) == "" {
		return &RetrievalError{
			Message:   "product identifier is empty",
			Retryable: false,
			Cause:     ErrCauseProductIDInvalid,
		}
	}
	return nil
}
