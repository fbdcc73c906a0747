package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

/*
Responsibilities

- Relay product page requests through the scraping proxy
- Apply credentials, headers and timeouts
- Classify responses

Fetch Semantics

- The proxy renders the upstream page and returns its markup
- A fetch is a single attempt; there is no retry or backoff here
- All fetches are recorded with metadata, failed ones included

The fetcher never parses content; it only returns bytes and metadata.
*/

type ProxyFetcher struct {
	metadataSink metadata.MetadataSink
	client       *resty.Client
	apiKey       string
}

func NewProxyFetcher(
	metadataSink metadata.MetadataSink,
	baseURL string,
	apiKey string,
	timeout time.Duration,
	userAgent string,
) ProxyFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return ProxyFetcher{
		metadataSink: metadataSink,
		client:       client,
		apiKey:       apiKey,
	}
}

func (p *ProxyFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "ProxyFetcher.Fetch"
	startTime := time.Now()

	result, err := p.performFetch(ctx, fetchParam)

	duration := time.Since(startTime)

	// Record the fetch event with actual data
	var statusCode int
	var contentType string
	if err == nil {
		statusCode = result.Code()
		contentType = result.ContentType()
	}

	p.metadataSink.RecordFetch(
		fetchParam.targetURL,
		statusCode,
		duration,
		contentType,
		fetchParam.productID,
	)

	if err != nil {
		p.recordFetchError(callerMethod, fetchParam, err)
		return FetchResult{}, err
	}

	return result, nil
}

func (p *ProxyFetcher) recordFetchError(callerMethod string, fetchParam FetchParam, err failure.ClassifiedError) {
	var fetchError *FetchError
	if errors.As(err, &fetchError) {
		p.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			mapFetchErrorToMetadataCause(fetchError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchParam.targetURL),
				metadata.NewAttr(metadata.AttrProductID, fetchParam.productID),
			},
		)
	}
}

func (p *ProxyFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, failure.ClassifiedError) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": p.apiKey,
			"url":     fetchParam.targetURL,
		}).
		Get("/")
	if err != nil {
		if isTimeout(err) {
			return FetchResult{}, &FetchError{
				Message:   fmt.Sprintf("request timed out: %v", err),
				Retryable: true,
				Cause:     ErrCauseTimeout,
			}
		}
		// Network/transport errors are retryable
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	// Handle HTTP status codes
	statusCode := resp.StatusCode()
	switch {
	case statusCode >= 500:
		// Server errors (5xx) are retryable
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("server error: %d", statusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}

	case statusCode == 429:
		// Too Many Requests is retryable
		return FetchResult{}, &FetchError{
			Message:   "rate limited (429)",
			Retryable: true,
			Cause:     ErrCauseRequestTooMany,
		}

	case statusCode == 401:
		// Proxy rejected the credential, not retryable
		return FetchResult{}, &FetchError{
			Message:   "proxy rejected api key (401)",
			Retryable: false,
			Cause:     ErrCauseProxyAuthRejected,
		}

	case statusCode == 404:
		// Unknown product page, not retryable
		return FetchResult{}, &FetchError{
			Message:   "page not found (404)",
			Retryable: false,
			Cause:     ErrCausePageNotFound,
		}

	case statusCode >= 400 && statusCode < 500:
		// Remaining client errors are access denials, not retryable
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("client error: %d", statusCode),
			Retryable: false,
			Cause:     ErrCausePageForbidden,
		}
	}

	body := resp.Body()
	result := FetchResult{
		targetURL: fetchParam.targetURL,
		body:      body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: uint64(len(body)),
			contentType:         resp.Header().Get("Content-Type"),
		},
	}

	return result, nil
}

// isTimeout separates deadline expiry from other transport failures.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

var _ Fetcher = (*ProxyFetcher)(nil)
