package retrieval

import (
	"github.com/cloudwego/eino/components/retriever"
)

// Index is the document retrieval capability the documentation branch
// consumes: a ranked top-k similarity search plus a readiness signal used
// for graceful degradation when no knowledge base is loaded.
//
// Retrieved documents carry their originating filename in metadata under
// SourceMetaKey so answers can cite where a passage came from.
type Index interface {
	retriever.Retriever
	IsReady() bool
}

// SourceMetaKey is the document metadata key holding the source filename.
const SourceMetaKey = "source"
