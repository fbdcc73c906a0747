package fetcher

// HTTP boundary

type FetchParam struct {
	// Fully-qualified product page URL the proxy should fetch upstream
	targetURL string
	// Product identifier the page belongs to. Observability only.
	productID string
}

func NewFetchParam(targetURL string, productID string) FetchParam {
	return FetchParam{
		targetURL: targetURL,
		productID: productID,
	}
}

func (p *FetchParam) TargetURL() string {
	return p.targetURL
}

func (p *FetchParam) ProductID() string {
	return p.productID
}

type FetchResult struct {
	targetURL string
	body      []byte
	meta      ResponseMeta
}

func (f *FetchResult) TargetURL() string {
	return f.targetURL
}

func (f *FetchResult) Body() []byte {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

func (f *FetchResult) ContentType() string {
	return f.meta.contentType
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
	contentType         string
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	targetURL string,
	body []byte,
	statusCode int,
	contentType string,
	transferredSizeByte uint64,
) FetchResult {
	return FetchResult{
		targetURL: targetURL,
		body:      body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: transferredSizeByte,
			contentType:         contentType,
		},
	}
}
