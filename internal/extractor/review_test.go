package extractor_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/HafizAhmed223/backend/internal/extractor"
	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMetadataSink is a test spy that captures recorded events
type mockMetadataSink struct {
	metadata.NoopSink
	errors      []recordedError
	extractions []recordedExtraction
}

type recordedError struct {
	PackageName string
	Action      string
	Cause       metadata.ErrorCause
	ErrorString string
}

type recordedExtraction struct {
	SourceURL         string
	ContainersFound   int
	ReviewsExtracted  int
	ContainersSkipped int
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	errorString string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, recordedError{
		PackageName: packageName,
		Action:      action,
		Cause:       cause,
		ErrorString: errorString,
	})
}

func (m *mockMetadataSink) RecordExtraction(
	sourceURL string,
	containersFound int,
	reviewsExtracted int,
	containersSkipped int,
) {
	m.extractions = append(m.extractions, recordedExtraction{
		SourceURL:         sourceURL,
		ContainersFound:   containersFound,
		ReviewsExtracted:  reviewsExtracted,
		ContainersSkipped: containersSkipped,
	})
}

func setupExtractor() (*extractor.ReviewExtractor, *mockMetadataSink) {
	sink := &mockMetadataSink{}
	ext := extractor.NewReviewExtractor(sink)
	return &ext, sink
}

const testSourceURL = "https://www.amazon.com/product-reviews/B0ACMEWH01/"

// TestExtract_ThreeContainersOneMissingMarker tests a page with three review
// containers where the middle one lacks the "out of N stars" heading marker.
// Expected: exactly two reviews, in document order, ratings "5" then "1".
func TestExtract_ThreeContainersOneMissingMarker(t *testing.T) {
	ext, sink := setupExtractor()
	htmlBytes := loadFixture(t, "product_page.html")

	reviews := ext.Extract(testSourceURL, htmlBytes)

	require.Len(t, reviews, 2, "malformed container must be skipped, not fail extraction")

	assert.Equal(t, "5", reviews[0].Rating)
	assert.Equal(t, "Best purchase this year", reviews[0].Title)
	assert.Equal(t, "Reviewed in the United States on March 3, 2024", reviews[0].Date)
	assert.Contains(t, reviews[0].Body, "Sound quality is superb")

	assert.Equal(t, "1", reviews[1].Rating)
	assert.Equal(t, "Broke after a week", reviews[1].Title)
	assert.Equal(t, "Reviewed in the United States on January 9, 2024", reviews[1].Date)

	// The skip was recorded for observability
	require.Len(t, sink.errors, 1, "Should have recorded one skipped container")
	assert.Equal(t, "extractor", sink.errors[0].PackageName)
	assert.Equal(t, int(metadata.CauseContentInvalid), int(sink.errors[0].Cause))

	require.Len(t, sink.extractions, 1)
	assert.Equal(t, 3, sink.extractions[0].ContainersFound)
	assert.Equal(t, 2, sink.extractions[0].ReviewsExtracted)
	assert.Equal(t, 1, sink.extractions[0].ContainersSkipped)
}

// TestExtract_PageLevelFieldsAttachedToEveryReview verifies the page-level
// fields are read once and stamped onto every review.
func TestExtract_PageLevelFieldsAttachedToEveryReview(t *testing.T) {
	ext, _ := setupExtractor()
	htmlBytes := loadFixture(t, "product_page.html")

	reviews := ext.Extract(testSourceURL, htmlBytes)

	require.Len(t, reviews, 2)
	for _, review := range reviews {
		assert.Equal(t, "https://images.example.com/I/81acmewh01.jpg", review.ImageSrc)
		assert.Equal(t, "4.3", review.RatingText, `the "out of 5" qualifier must be stripped`)
		assert.Equal(t, "Acme Wireless Headphones, Noise Cancelling, 40h Battery", review.ProductName)
	}
}

// TestExtract_Idempotent verifies extraction is a pure function of the input.
func TestExtract_Idempotent(t *testing.T) {
	ext, _ := setupExtractor()
	htmlBytes := loadFixture(t, "product_page.html")

	first := ext.Extract(testSourceURL, htmlBytes)
	second := ext.Extract(testSourceURL, htmlBytes)

	assert.Equal(t, first, second)
}

// TestExtract_NoContainers verifies a container-free page yields an empty,
// non-nil sequence rather than an error.
func TestExtract_NoContainers(t *testing.T) {
	ext, sink := setupExtractor()
	htmlBytes := loadFixture(t, "no_reviews.html")

	reviews := ext.Extract(testSourceURL, htmlBytes)

	require.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Empty(t, sink.errors, "a review-free page is not an error")

	require.Len(t, sink.extractions, 1)
	assert.Equal(t, 0, sink.extractions[0].ContainersFound)
}

// TestExtract_NotHTMLInput verifies garbage input degrades to an empty
// sequence instead of failing.
func TestExtract_NotHTMLInput(t *testing.T) {
	ext, _ := setupExtractor()

	reviews := ext.Extract(testSourceURL, []byte{0x00, 0x01, 0xff, 0xfe})

	require.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

// TestExtract_VariantHooks verifies the fallback selector candidates:
// cmps star rating, span-based title, #productTitle, #imgTagWrapperId image.
func TestExtract_VariantHooks(t *testing.T) {
	ext, _ := setupExtractor()
	htmlBytes := loadFixture(t, "variant_hooks.html")

	reviews := ext.Extract(testSourceURL, htmlBytes)

	require.Len(t, reviews, 1)
	assert.Equal(t, "4", reviews[0].Rating)
	assert.Equal(t, "Clacky in the best way", reviews[0].Title)
	assert.Equal(t, "https://images.example.com/I/71acmekb02.jpg", reviews[0].ImageSrc)
	assert.Equal(t, "4.7", reviews[0].RatingText)
	assert.Equal(t, "Acme Mechanical Keyboard, Hot-Swappable, RGB", reviews[0].ProductName)
}

// TestExtract_MissingOptionalFields verifies that only the title marker is
// required; absent rating, date, body, and page fields read as empty strings.
func TestExtract_MissingOptionalFields(t *testing.T) {
	ext, sink := setupExtractor()
	htmlBytes := loadFixture(t, "missing_optional_fields.html")

	reviews := ext.Extract(testSourceURL, htmlBytes)

	require.Len(t, reviews, 1)
	assert.Equal(t, "3", reviews[0].Rating)
	assert.Equal(t, "It lights up", reviews[0].Title)
	assert.Equal(t, "", reviews[0].Date)
	assert.Equal(t, "", reviews[0].Body)
	assert.Equal(t, "", reviews[0].ImageSrc)
	assert.Equal(t, "", reviews[0].RatingText)
	assert.Equal(t, "", reviews[0].ProductName)
	assert.Empty(t, sink.errors)
}

// buildReviewDoc renders a minimal single-review page with the given body
// text, for exercising the truncation rule with generated inputs.
func buildReviewDoc(body string) []byte {
	return []byte(fmt.Sprintf(`<!DOCTYPE html>
<html><body>
  <div data-hook="review">
    <a data-hook="review-title">
      <i data-hook="review-star-rating"><span class="a-icon-alt">5 out of 5 stars</span></i>
      <span>Generated</span>
    </a>
    <span data-hook="review-date">Reviewed on July 1, 2024</span>
    <span data-hook="review-body"><span>%s</span></span>
  </div>
</body></html>`, body))
}

// numberedWords returns "w1 w2 ... wN".
func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i+1)
	}
	return strings.Join(words, " ")
}

// TestExtract_BodyTruncationLaw verifies: output word count = min(w, 100),
// with the " ..." marker appended iff w > 100.
func TestExtract_BodyTruncationLaw(t *testing.T) {
	tests := []struct {
		name          string
		wordCount     int
		wantWords     int
		wantTruncated bool
	}{
		{name: "short body kept verbatim", wordCount: 12, wantWords: 12, wantTruncated: false},
		{name: "ninety-nine words kept", wordCount: 99, wantWords: 99, wantTruncated: false},
		{name: "exactly one hundred words kept", wordCount: 100, wantWords: 100, wantTruncated: false},
		{name: "one hundred one words truncated", wordCount: 101, wantWords: 100, wantTruncated: true},
		{name: "very long body truncated", wordCount: 350, wantWords: 100, wantTruncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, _ := setupExtractor()
			body := numberedWords(tt.wordCount)

			reviews := ext.Extract(testSourceURL, buildReviewDoc(body))
			require.Len(t, reviews, 1)

			got := reviews[0].Body
			if tt.wantTruncated {
				require.True(t, strings.HasSuffix(got, " ..."), "truncated body must end with the marker")
				content := strings.TrimSuffix(got, " ...")
				words := strings.Fields(content)
				assert.Len(t, words, tt.wantWords)
				assert.Equal(t, strings.Join(strings.Fields(body)[:tt.wantWords], " "), content)
			} else {
				assert.False(t, strings.HasSuffix(got, " ..."))
				assert.Len(t, strings.Fields(got), tt.wantWords)
				assert.Equal(t, body, got)
			}
		})
	}
}

// TestExtract_BodyWhitespaceCollapsedOnlyWhenTruncated verifies short bodies
// keep their original internal whitespace while truncated ones are rejoined
// with single spaces.
func TestExtract_BodyWhitespaceCollapsedOnlyWhenTruncated(t *testing.T) {
	ext, _ := setupExtractor()

	short := "great   product\n\nwould  buy again"
	reviews := ext.Extract(testSourceURL, buildReviewDoc(short))
	require.Len(t, reviews, 1)
	assert.Equal(t, short, reviews[0].Body, "short bodies are trimmed but otherwise verbatim")

	long := strings.ReplaceAll(numberedWords(150), " ", "   ")
	reviews = ext.Extract(testSourceURL, buildReviewDoc(long))
	require.Len(t, reviews, 1)
	assert.NotContains(t, strings.TrimSuffix(reviews[0].Body, " ..."), "  ",
		"truncated bodies are rejoined with single spaces")
}

// TestExtract_CustomSelectors verifies custom selector candidates extend the
// defaults without displacing them.
func TestExtract_CustomSelectors(t *testing.T) {
	sink := &mockMetadataSink{}
	ext := extractor.NewReviewExtractorWithSelectors(sink, extractor.Selectors{
		ReviewContainer: []string{`li.custom-review`},
		Title:           []string{`p.custom-title`},
		StarRating:      []string{`span.custom-stars`},
	})

	doc := []byte(`<!DOCTYPE html>
<html><body>
  <ul>
    <li class="custom-review">
      <span class="custom-stars">2 out of 5 stars</span>
      <p class="custom-title">2 out of 5 stars Disappointing build</p>
    </li>
  </ul>
</body></html>`)

	reviews := ext.Extract(testSourceURL, doc)

	require.Len(t, reviews, 1)
	assert.Equal(t, "2", reviews[0].Rating)
	assert.Equal(t, "Disappointing build", reviews[0].Title)
}
