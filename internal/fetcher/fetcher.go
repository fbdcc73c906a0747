package fetcher

import (
	"context"

	"github.com/HafizAhmed223/backend/pkg/failure"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
	) (FetchResult, failure.ClassifiedError)
}
