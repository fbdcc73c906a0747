package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HafizAhmed223/backend/internal/build"
	"github.com/HafizAhmed223/backend/internal/extractor"
	"github.com/HafizAhmed223/backend/internal/fetcher"
	"github.com/HafizAhmed223/backend/internal/retrieval"
	"github.com/HafizAhmed223/backend/pkg/failure"
)

// ReviewRetriever is the retrieval surface the HTTP handlers depend on.
type ReviewRetriever interface {
	RetrieveReviews(
		ctx context.Context,
		productID string,
	) ([]extractor.Review, failure.ClassifiedError)
	RetrievePair(
		ctx context.Context,
		productIDA string,
		productIDB string,
	) (retrieval.PairResult, failure.ClassifiedError)
}

var _ ReviewRetriever = (*retrieval.Orchestrator)(nil)

// productReviewsResponse is one side of a comparison response.
type productReviewsResponse struct {
	ProductID string             `json:"productId"`
	Reviews   []extractor.Review `json:"reviews"`
}

// NewRouter assembles the HTTP surface: middleware, review routes and the
// operational endpoints.
func NewRouter(retriever ReviewRetriever, registry *prometheus.Registry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())

	router.GET("/healthz", handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	api.GET("/products/:id/reviews", handleProductReviews(retriever))
	api.GET("/products/:id/compare/:competitorId", handleCompareReviews(retriever))

	return router
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": build.Version,
	})
}

func handleProductReviews(retriever ReviewRetriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := retriever.RetrieveReviews(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondRetrievalFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

func handleCompareReviews(retriever ReviewRetriever) gin.HandlerFunc {
	return func(c *gin.Context) {
		pair, err := retriever.RetrievePair(
			c.Request.Context(),
			c.Param("id"),
			c.Param("competitorId"),
		)
		if err != nil {
			respondRetrievalFailure(c, err)
			return
		}

		first := pair.First()
		second := pair.Second()
		c.JSON(http.StatusOK, []productReviewsResponse{
			{ProductID: first.ProductID(), Reviews: first.Reviews()},
			{ProductID: second.ProductID(), Reviews: second.Reviews()},
		})
	}
}

// respondRetrievalFailure translates classified failures into generic
// responses. Internal diagnostic detail never reaches the caller; the
// metadata sink already holds it.
func respondRetrievalFailure(c *gin.Context, err failure.ClassifiedError) {
	var retrievalErr *retrieval.RetrievalError
	if errors.As(err, &retrievalErr) && retrievalErr.Cause == retrieval.ErrCauseProductIDInvalid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product identifier"})
		return
	}

	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to retrieve product reviews"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
