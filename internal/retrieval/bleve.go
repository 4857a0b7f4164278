package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/retriever"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	logx "github.com/hrnexus-poc/server/pkg/logger"
)

// passage is one indexed chunk of a knowledge-base document.
type passage struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// DocumentIndex is an in-memory bleve index over chunked markdown files.
// Built once at startup, read-only afterwards; safe to share across runs.
type DocumentIndex struct {
	index    bleve.Index
	passages map[string]passage
	topK     int
}

const (
	// DefaultTopK bounds how many passages ground a documentation answer.
	DefaultTopK = 3

	// maxChunkLen is the target upper bound for one indexed passage.
	maxChunkLen = 1000
)

// BuildDocumentIndex indexes every .md and .txt file under dir. A missing or
// empty directory is not an error: the returned index simply reports not
// ready and the documentation branch degrades.
func BuildDocumentIndex(dir string, topK int) (*DocumentIndex, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create document index: %w", err)
	}

	d := &DocumentIndex{
		index:    idx,
		passages: make(map[string]passage),
		topK:     topK,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logx.Warn().Err(err).Str("dir", dir).Msg("Knowledge base directory not readable; documentation search disabled")
		return d, nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		if err := d.indexFile(filepath.Join(dir, entry.Name()), entry.Name()); err != nil {
			logx.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping unreadable knowledge base file")
		}
	}

	logx.Info().Int("passages", len(d.passages)).Str("dir", dir).Msg("Document index built")
	return d, nil
}

func (d *DocumentIndex) indexFile(path, name string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, chunk := range chunkText(string(b)) {
		id := uuid.NewString()
		p := passage{Content: chunk, Source: name}
		if err := d.index.Index(id, p); err != nil {
			return fmt.Errorf("index passage: %w", err)
		}
		d.passages[id] = p
	}
	return nil
}

// chunkText splits text on blank lines and packs paragraphs into chunks of
// at most maxChunkLen characters, never splitting inside a paragraph.
func chunkText(text string) []string {
	paras := strings.Split(text, "\n\n")
	var chunks []string
	var sb strings.Builder

	flush := func() {
		if s := strings.TrimSpace(sb.String()); s != "" {
			chunks = append(chunks, s)
		}
		sb.Reset()
	}

	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if sb.Len() > 0 && sb.Len()+len(p) > maxChunkLen {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(p)
	}
	flush()
	return chunks
}

// IsReady reports whether any passages are indexed.
func (d *DocumentIndex) IsReady() bool {
	return d != nil && len(d.passages) > 0
}

// GetType returns the component type label used in callbacks.
func (d *DocumentIndex) GetType() string {
	return "BleveDocumentIndex"
}

// Retrieve runs a ranked match query and returns at most top-k passages,
// each carrying its source filename in metadata.
func (d *DocumentIndex) Retrieve(ctx context.Context, query string, opts ...retriever.Option) (docs []*schema.Document, err error) {
	options := retriever.GetCommonOptions(&retriever.Options{TopK: &d.topK}, opts...)

	topK := d.topK
	if options.TopK != nil && *options.TopK > 0 {
		topK = *options.TopK
	}

	ctx = callbacks.EnsureRunInfo(ctx, d.GetType(), components.ComponentOfRetriever)
	ctx = callbacks.OnStart(ctx, &retriever.CallbackInput{Query: query, TopK: topK})
	defer func() {
		if err != nil {
			callbacks.OnError(ctx, err)
		}
	}()

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), topK, 0, false)
	res, err := d.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("document search: %w", err)
	}

	docs = make([]*schema.Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		p, ok := d.passages[hit.ID]
		if !ok {
			continue
		}
		doc := &schema.Document{
			ID:      hit.ID,
			Content: p.Content,
			MetaData: map[string]any{
				SourceMetaKey: p.Source,
			},
		}
		docs = append(docs, doc.WithScore(hit.Score))
	}

	callbacks.OnEnd(ctx, &retriever.CallbackOutput{Docs: docs})
	return docs, nil
}

var _ Index = (*DocumentIndex)(nil)
