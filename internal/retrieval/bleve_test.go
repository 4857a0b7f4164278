package retrieval

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuildDocumentIndexMissingDirIsNotReady(t *testing.T) {
	idx, err := BuildDocumentIndex(filepath.Join(t.TempDir(), "does-not-exist"), 3)
	require.NoError(t, err)
	assert.False(t, idx.IsReady())
}

func TestBuildDocumentIndexEmptyDirIsNotReady(t *testing.T) {
	idx, err := BuildDocumentIndex(t.TempDir(), 3)
	require.NoError(t, err)
	assert.False(t, idx.IsReady())
}

func TestBuildDocumentIndexSkipsNonDocFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "policy.md", "Code review requires one approval.")
	writeDoc(t, dir, "data.json", `{"not": "a document"}`)

	idx, err := BuildDocumentIndex(dir, 3)
	require.NoError(t, err)
	assert.True(t, idx.IsReady())

	docs, err := idx.Retrieve(context.Background(), "json")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetrieveReturnsRankedPassagesWithSource(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "code_review.md", "Every change goes through code review. Reviews need one approval from a maintainer.")
	writeDoc(t, dir, "deployments.md", "Production deployments run through the shared pipeline with blue-green rollout.")

	idx, err := BuildDocumentIndex(dir, 3)
	require.NoError(t, err)
	require.True(t, idx.IsReady())

	docs, err := idx.Retrieve(context.Background(), "code review approval")
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	top := docs[0]
	assert.Equal(t, "code_review.md", top.MetaData[SourceMetaKey])
	assert.Contains(t, top.Content, "code review")
	assert.Greater(t, top.Score(), 0.0)
}

func TestRetrieveHonorsTopKOption(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"a.md", "b.md", "c.md", "d.md"} {
		writeDoc(t, dir, name, strings.Repeat("sprint planning cadence. ", i+1))
	}

	idx, err := BuildDocumentIndex(dir, 3)
	require.NoError(t, err)

	docs, err := idx.Retrieve(context.Background(), "sprint planning", retriever.WithTopK(2))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(docs), 2)
	assert.NotEmpty(t, docs)
}

func TestChunkTextPacksParagraphs(t *testing.T) {
	long := strings.Repeat("x", maxChunkLen-10)
	text := "first paragraph\n\nsecond paragraph\n\n" + long

	chunks := chunkText(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, "first paragraph\n\nsecond paragraph", chunks[0])
	assert.Equal(t, long, chunks[1])
}
