package retrieval

import "github.com/HafizAhmed223/backend/internal/extractor"

// Retrieval results

// ProductReviews pairs a review list with the identifier it was
// retrieved for, so callers never have to guess which list belongs
// to which product.
type ProductReviews struct {
	productID string
	reviews   []extractor.Review
}

func NewProductReviews(
	productID string,
	reviews []extractor.Review,
) ProductReviews {
	return ProductReviews{
		productID: productID,
		reviews:   reviews,
	}
}

func (p *ProductReviews) ProductID() string {
	return p.productID
}

func (p *ProductReviews) Reviews() []extractor.Review {
	return p.reviews
}

// PairResult carries both sides of a paired retrieval in request order.
type PairResult struct {
	first  ProductReviews
	second ProductReviews
}

func NewPairResult(
	first ProductReviews,
	second ProductReviews,
) PairResult {
	return PairResult{
		first:  first,
		second: second,
	}
}

func (p *PairResult) First() ProductReviews {
	return p.first
}

func (p *PairResult) Second() ProductReviews {
	return p.second
}
