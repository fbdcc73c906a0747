package archive_test

import (
	"testing"
	"time"

	"github.com/HafizAhmed223/backend/internal/metadata"
	"github.com/HafizAhmed223/backend/pkg/hashutil"
)

// metadataSinkMock captures error and artifact recordings
type metadataSinkMock struct {
	metadata.NoopSink

	recordErrorCalled      bool
	recordErrorPackageName string
	recordErrorCause       metadata.ErrorCause
	recordErrorAttrs       []metadata.Attribute

	recordArtifactCalled bool
	recordArtifactKind   metadata.ArtifactKind
	recordArtifactPath   string
	recordArtifactAttrs  []metadata.Attribute
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.recordErrorCalled = true
	m.recordErrorPackageName = packageName
	m.recordErrorCause = cause
	m.recordErrorAttrs = attrs
}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.recordArtifactCalled = true
	m.recordArtifactKind = kind
	m.recordArtifactPath = path
	m.recordArtifactAttrs = attrs
}

// findAttrValue returns the value of the first attribute with the given key
func findAttrValue(attrs []metadata.Attribute, key metadata.AttributeKey) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

// expectedFilename computes the content-addressed filename Write should produce
func expectedFilename(t *testing.T, productID string, body []byte, hashAlgo hashutil.HashAlgo) string {
	t.Helper()
	shortHash, err := hashutil.ShortHashBytes(body, hashAlgo, 12)
	if err != nil {
		t.Fatalf("failed to compute expected filename hash: %v", err)
	}
	return productID + "-" + shortHash + ".html"
}
