package archive

// Persistence

type WriteResult struct {
	productID   string
	path        string
	contentHash string
}

func NewWriteResult(
	productID string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		productID:   productID,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) ProductID() string {
	return w.productID
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
