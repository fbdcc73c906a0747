package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/HafizAhmed223/backend/internal/metadata"
)

/*
Responsibilities
- Parse raw product-review markup into a DOM tree
- Locate every review container in document order
- Lift per-review fields (rating, title, date, body) out of each container
- Read page-level fields (product image, aggregate rating, product name)
  once and attach them to every Review

Failure Policy
- A container whose title lacks the "out of N stars" marker is skipped
  entirely; it contributes no Review and does not abort the rest.
- The engine never fails as a whole. An unparseable or container-free
  document yields an empty sequence, not an error.

Determinism
- Output order equals the document order of review containers.
- No caching happens here; this engine is a pure function over its input.
*/

// titleMarkerPattern matches the rating phrase prefixed to review headings.
// Splitting the heading on it must yield two parts or the container is
// considered malformed.
var titleMarkerPattern = regexp.MustCompile(`out of \d+ stars`)

// ratingOutOfQualifier is the page-level substring removed from the
// aggregate rating text, leaving just the numeric part.
const ratingOutOfQualifier = "out of 5"

// bodyWordLimit caps review bodies at this many whitespace-delimited words.
const bodyWordLimit = 100

// truncationMarker is appended to bodies that were cut at the word limit.
const truncationMarker = " ..."

type ReviewExtractor struct {
	metadataSink metadata.MetadataSink
	selectors    Selectors
}

func NewReviewExtractor(
	metadataSink metadata.MetadataSink,
) ReviewExtractor {
	return ReviewExtractor{
		metadataSink: metadataSink,
		selectors:    DefaultSelectors(),
	}
}

// NewReviewExtractorWithSelectors overlays custom selector candidates on
// the defaults, for page variants the defaults do not cover.
func NewReviewExtractorWithSelectors(
	metadataSink metadata.MetadataSink,
	custom Selectors,
) ReviewExtractor {
	return ReviewExtractor{
		metadataSink: metadataSink,
		selectors:    DefaultSelectors().Merge(custom),
	}
}

// Extract turns raw markup into the ordered sequence of reviews it
// contains. sourceURL identifies the document in recorded metadata only;
// it does not influence extraction.
func (e *ReviewExtractor) Extract(sourceURL string, htmlByte []byte) []Review {
	doc, err := ParseDocument(htmlByte)
	if err != nil {
		extractionErr := &ExtractionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseDocumentUnparseable,
		}
		e.metadataSink.RecordError(
			time.Now(),
			"extractor",
			"ReviewExtractor.Extract",
			mapExtractionErrorToMetadataCause(extractionErr),
			extractionErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceURL),
			},
		)
		e.metadataSink.RecordExtraction(sourceURL, 0, 0, 0)
		return []Review{}
	}

	page := e.readPageFields(doc)
	containers := findAll(doc, e.selectors.ReviewContainer)

	reviews := make([]Review, 0, len(containers))
	skipped := 0
	for _, container := range containers {
		review, buildErr := e.buildReview(container, page)
		if buildErr != nil {
			skipped++
			e.metadataSink.RecordError(
				time.Now(),
				"extractor",
				"ReviewExtractor.Extract",
				mapExtractionErrorToMetadataCause(buildErr),
				buildErr.Error(),
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrURL, sourceURL),
				},
			)
			continue
		}
		reviews = append(reviews, review)
	}

	e.metadataSink.RecordExtraction(sourceURL, len(containers), len(reviews), skipped)
	return reviews
}

// readPageFields reads the document-level fields exactly once. Missing
// fields read as empty strings; they never fail a page.
func (e *ReviewExtractor) readPageFields(doc DocumentView) pageFields {
	ratingText := firstText(doc, e.selectors.RatingOutOf)
	ratingText = strings.TrimSpace(strings.Replace(ratingText, ratingOutOfQualifier, "", 1))

	return pageFields{
		imageSrc:    firstAttr(doc, e.selectors.ProductImage, "src"),
		ratingText:  ratingText,
		productName: strings.TrimSpace(firstText(doc, e.selectors.ProductName)),
	}
}

// buildReview lifts the per-review fields out of one container. The title
// split is the only hard requirement; every other field degrades to an
// empty string when its node is missing.
func (e *ReviewExtractor) buildReview(container NodeView, page pageFields) (Review, *ExtractionError) {
	titleRaw := firstText(container, e.selectors.Title)
	parts := titleMarkerPattern.Split(titleRaw, 2)
	if len(parts) < 2 {
		return Review{}, &ExtractionError{
			Message:   "review heading does not carry the rating phrase",
			Retryable: false,
			Cause:     ErrCauseTitleMarkerMissing,
		}
	}

	return Review{
		Rating:      firstToken(firstText(container, e.selectors.StarRating)),
		Title:       strings.TrimSpace(parts[1]),
		Date:        strings.TrimSpace(firstText(container, e.selectors.Date)),
		Body:        truncateBody(firstText(container, e.selectors.Body)),
		ImageSrc:    page.imageSrc,
		RatingText:  page.ratingText,
		ProductName: page.productName,
	}, nil
}

// truncateBody applies the body truncation rule: split on runs of
// whitespace; above the word limit, keep the first bodyWordLimit words
// joined by single spaces plus the truncation marker; otherwise return
// the original text trimmed of surrounding whitespace.
func truncateBody(raw string) string {
	words := strings.Fields(raw)
	if len(words) > bodyWordLimit {
		return strings.Join(words[:bodyWordLimit], " ") + truncationMarker
	}
	return strings.TrimSpace(raw)
}

// firstToken returns the first whitespace-delimited token, or "" when the
// input holds none.
func firstToken(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// findAll returns the matches of the first candidate selector that has
// any, in document order. Candidates are alternatives for the same field,
// so results are never unioned across them.
func findAll(scope DocumentView, candidates []string) []NodeView {
	for _, selector := range candidates {
		if nodes := scope.Find(selector); len(nodes) > 0 {
			return nodes
		}
	}
	return nil
}

// firstText returns the text of the first node matched by the candidate
// list, or "" when nothing matches.
func firstText(scope DocumentView, candidates []string) string {
	for _, selector := range candidates {
		if nodes := scope.Find(selector); len(nodes) > 0 {
			return nodes[0].Text()
		}
	}
	return ""
}

// firstAttr returns the named attribute of the first matched node carrying
// it, or "" when no candidate matches or the attribute is absent everywhere.
func firstAttr(scope DocumentView, candidates []string, name string) string {
	for _, selector := range candidates {
		for _, node := range scope.Find(selector) {
			if value, ok := node.Attr(name); ok {
				return value
			}
		}
	}
	return ""
}
