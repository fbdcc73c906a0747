package extractor

// Selectors lists the candidate CSS selectors for each field the engine
// reads. Candidates within a field are ordered by specificity and
// reliability; the first selector with a match wins.
//
// The defaults target the data-hook attributes the upstream retailer
// stamps on its review markup. Layout-derived class selectors are kept
// as fallbacks since data-hooks occasionally vary between page variants.
type Selectors struct {
	// Per-review container blocks
	ReviewContainer []string
	// Star rating phrase inside a container, e.g. "5.0 out of 5 stars"
	StarRating []string
	// Review heading, prefixed with the rating phrase on most variants
	Title []string
	// Review date line
	Date []string
	// Review body text
	Body []string
	// Page-level product image
	ProductImage []string
	// Page-level aggregate rating, e.g. "4.3 out of 5"
	RatingOutOf []string
	// Page-level product title
	ProductName []string
}

func DefaultSelectors() Selectors {
	return Selectors{
		ReviewContainer: []string{
			`div[data-hook="review"]`,
		},
		StarRating: []string{
			`i[data-hook="review-star-rating"]`,
			`i[data-hook="cmps-review-star-rating"]`,
			`.review-rating`,
		},
		Title: []string{
			`a[data-hook="review-title"]`,
			`span[data-hook="review-title"]`,
			`.review-title`,
		},
		Date: []string{
			`span[data-hook="review-date"]`,
			`.review-date`,
		},
		Body: []string{
			`span[data-hook="review-body"]`,
			`.review-text-content`,
		},
		ProductImage: []string{
			`img[data-hook="cr-product-image"]`,
			`#imgTagWrapperId img`,
		},
		RatingOutOf: []string{
			`span[data-hook="rating-out-of-text"]`,
			`.averageStarRating`,
		},
		ProductName: []string{
			`#productTitle`,
			`a[data-hook="product-link"]`,
			`h1.product-title`,
		},
	}
}

// Merge overlays custom candidates on top of the receiver's, per field,
// deduplicating so each selector appears only once. Custom selectors are
// appended after the existing ones, keeping the defaults' priority.
func (s Selectors) Merge(custom Selectors) Selectors {
	return Selectors{
		ReviewContainer: mergeSelectors(s.ReviewContainer, custom.ReviewContainer),
		StarRating:      mergeSelectors(s.StarRating, custom.StarRating),
		Title:           mergeSelectors(s.Title, custom.Title),
		Date:            mergeSelectors(s.Date, custom.Date),
		Body:            mergeSelectors(s.Body, custom.Body),
		ProductImage:    mergeSelectors(s.ProductImage, custom.ProductImage),
		RatingOutOf:     mergeSelectors(s.RatingOutOf, custom.RatingOutOf),
		ProductName:     mergeSelectors(s.ProductName, custom.ProductName),
	}
}

// mergeSelectors combines default selectors with user-provided custom selectors,
// deduplicating to ensure each selector appears only once.
func mergeSelectors(defaultSelectors, customSelectors []string) []string {
	seen := make(map[string]bool)
	var merged []string

	// Add defaults first
	for _, selector := range defaultSelectors {
		if !seen[selector] {
			seen[selector] = true
			merged = append(merged, selector)
		}
	}

	// Add custom selectors, skipping duplicates
	for _, selector := range customSelectors {
		if !seen[selector] {
			seen[selector] = true
			merged = append(merged, selector)
		}
	}

	return merged
}
