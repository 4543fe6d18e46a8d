package chroma

import "context"

// Client talks to the Chroma-compatible collection/query REST service.
// The vector store is externally owned; this client only sequences its
// collection lifecycle and document operations.
type Client interface {
	Health(ctx context.Context) error
	CollectionExists(ctx context.Context, collection string) (bool, error)
	// CreateCollection deletes any collection with the same name first,
	// so a create always starts empty.
	CreateCollection(ctx context.Context, collection string) error
	DeleteCollection(ctx context.Context, collection string) error
	AddDocuments(ctx context.Context, collection string, docs []string, metadatas []map[string]any, ids []string) error
	Query(ctx context.Context, collection string, queryTexts []string, nResults int) (*QueryResult, error)
	GetAll(ctx context.Context, collection string) (*CollectionData, error)
}

// QueryResult mirrors the service's nested per-query result lists.
type QueryResult struct {
	IDs       [][]string         `json:"ids"`
	Documents [][]string         `json:"documents"`
	Metadatas [][]map[string]any `json:"metadatas"`
}

// CollectionData is the flat dump of a collection.
type CollectionData struct {
	IDs       []string         `json:"ids"`
	Documents []string         `json:"documents"`
	Metadatas []map[string]any `json:"metadatas"`
}
