package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleDocumentResource(t *testing.T) {
	server, _ := newTestServer(t, nil)

	result, err := server.handleDocumentResource(context.Background(), readRequest("cv://document"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var doc domain.Document
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &doc))
	assert.Equal(t, "Test CV", doc.Title)
	assert.Len(t, doc.Sections, 3)
}

func TestServer_handleSectionResource(t *testing.T) {
	server, _ := newTestServer(t, nil)
	ctx := context.Background()

	t.Run("returns content", func(t *testing.T) {
		result, err := server.handleSectionResource(ctx, readRequest("cv://sections/a"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.JSONEq(t, `{"content":"alpha"}`, result.Contents[0].Text)
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := server.handleSectionResource(ctx, readRequest("cv://sections/zzz"))
		assert.Error(t, err)
	})

	t.Run("malformed uri", func(t *testing.T) {
		_, err := server.handleSectionResource(ctx, readRequest("cv://other/a"))
		assert.Error(t, err)
	})
}

func TestExtractSectionID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"cv://sections/abc", "abc"},
		{"cv://sections/", ""},
		{"cv://sections/a/b", ""},
		{"cv://document", ""},
		{"other://sections/abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSectionID(tt.uri))
		})
	}
}
