package retrieval_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/HafizAhmed223/backend/internal/fetcher"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

// fetcherMock is a testify mock for the Fetcher
type fetcherMock struct {
	mock.Mock
}

func (f *fetcherMock) Fetch(
	ctx context.Context,
	fetchParam fetcher.FetchParam,
) (fetcher.FetchResult, failure.ClassifiedError) {
	args := f.Called(ctx, fetchParam)
	result := args.Get(0).(fetcher.FetchResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return result, err
}

func newFetcherMockForTest(t *testing.T) *fetcherMock {
	t.Helper()
	return new(fetcherMock)
}

// matchTargetURL matches the fetch parameter built for one product identifier
func matchTargetURL(productID string) any {
	expected := fmt.Sprintf(testPageTemplate, productID)
	return mock.MatchedBy(func(p fetcher.FetchParam) bool {
		return p.TargetURL() == expected
	})
}

// fetchResultForPage builds the successful fetch result the proxy would
// return for one product page
func fetchResultForPage(productID string, body string) fetcher.FetchResult {
	return fetcher.NewFetchResultForTest(
		fmt.Sprintf(testPageTemplate, productID),
		[]byte(body),
		200,
		"text/html; charset=utf-8",
		uint64(len(body)),
	)
}

// setupFetcherMockWithPage sets up the fetcher mock to return a product page
func setupFetcherMockWithPage(m *fetcherMock, productID string, body string) {
	m.On("Fetch", mock.Anything, matchTargetURL(productID)).
		Return(fetchResultForPage(productID, body), nil)
}

// setupFetcherMockWithError sets up the fetcher mock to fail for one product
func setupFetcherMockWithError(m *fetcherMock, productID string) *fetcher.FetchError {
	fetchErr := &fetcher.FetchError{
		Message:   "server error: 502",
		Retryable: true,
		Cause:     fetcher.ErrCauseRequest5xx,
	}
	m.On("Fetch", mock.Anything, matchTargetURL(productID)).
		Return(fetcher.FetchResult{}, fetchErr)
	return fetchErr
}

// productPageAlpha holds two well-formed review containers.
const productPageAlpha = `<!DOCTYPE html>
<html lang="en-us">
<body>
  <div id="cm_cr-product_info">
    <img data-hook="cr-product-image" src="https://images.example.com/I/61acmesd01.jpg" alt="Acme Standing Desk"/>
    <h1><a data-hook="product-link" href="/dp/B0ALPHA001">Acme Standing Desk, Dual Motor, 48 Inch</a></h1>
    <span data-hook="rating-out-of-text">4.6 out of 5</span>
  </div>
  <div id="cm_cr-review_list">
    <div data-hook="review" id="RALPHA1">
      <a data-hook="review-title" href="/gp/customer-reviews/RALPHA1">
        <i data-hook="review-star-rating"><span class="a-icon-alt">5 out of 5 stars</span></i>
        <span>Rock solid at full height</span>
      </a>
      <span data-hook="review-date">Reviewed in the United States on April 12, 2024</span>
      <span data-hook="review-body"><span>No wobble even with two monitors on arms.</span></span>
    </div>
    <div data-hook="review" id="RALPHA2">
      <a data-hook="review-title" href="/gp/customer-reviews/RALPHA2">
        <i data-hook="review-star-rating"><span class="a-icon-alt">3 out of 5 stars</span></i>
        <span>Motors are loud</span>
      </a>
      <span data-hook="review-date">Reviewed in the United States on March 28, 2024</span>
      <span data-hook="review-body"><span>Does the job but wakes the whole office when it moves.</span></span>
    </div>
  </div>
</body>
</html>`

// productPageBravo holds a single review container.
const productPageBravo = `<!DOCTYPE html>
<html lang="en-us">
<body>
  <div id="cm_cr-product_info">
    <img data-hook="cr-product-image" src="https://images.example.com/I/51acmedl01.jpg" alt="Acme Desk Lamp"/>
    <h1><a data-hook="product-link" href="/dp/B0BRAVO001">Acme Desk Lamp, Warm White, Dimmable</a></h1>
    <span data-hook="rating-out-of-text">4.1 out of 5</span>
  </div>
  <div id="cm_cr-review_list">
    <div data-hook="review" id="RBRAVO1">
      <a data-hook="review-title" href="/gp/customer-reviews/RBRAVO1">
        <i data-hook="review-star-rating"><span class="a-icon-alt">4 out of 5 stars</span></i>
        <span>Pleasant light, flimsy arm</span>
      </a>
      <span data-hook="review-date">Reviewed in the United States on May 2, 2024</span>
      <span data-hook="review-body"><span>The warm setting is easy on the eyes at night.</span></span>
    </div>
  </div>
</body>
</html>`

// productPageNoReviews carries page-level fields but no review containers.
const productPageNoReviews = `<!DOCTYPE html>
<html lang="en-us">
<body>
  <div id="cm_cr-product_info">
    <h1><a data-hook="product-link" href="/dp/B0EMPTY001">Acme Cable Tray</a></h1>
    <span data-hook="rating-out-of-text">0 out of 5</span>
  </div>
  <div id="cm_cr-review_list"></div>
</body>
</html>`
