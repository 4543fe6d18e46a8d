package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type addRequest struct {
	Documents []string         `json:"documents"`
	Metadatas []map[string]any `json:"metadatas"`
	IDs       []string         `json:"ids"`
}

type queryRequest struct {
	QueryTexts []string `json:"query_texts"`
	NResults   int      `json:"n_results"`
	Include    []string `json:"include"`
}

type getRequest struct {
	Include []string `json:"include"`
}

type createRequest struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata"`
}

func (c *implClient) Health(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return fmt.Errorf("chroma service unhealthy: %q", resp.Status)
	}
	return nil
}

func (c *implClient) CollectionExists(ctx context.Context, collection string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	if err := c.do(ctx, http.MethodGet, "/collections/"+collection+"/exists", nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *implClient) CreateCollection(ctx context.Context, collection string) error {
	exists, err := c.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if exists {
		if err := c.DeleteCollection(ctx, collection); err != nil {
			return err
		}
	}

	req := createRequest{
		Name: collection,
		Metadata: map[string]any{
			"description": "PowerPoint presentation collection",
			"type":        "presentation",
		},
	}
	return c.do(ctx, http.MethodPost, "/collections", req, nil)
}

func (c *implClient) DeleteCollection(ctx context.Context, collection string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+collection, nil, nil)
}

func (c *implClient) AddDocuments(ctx context.Context, collection string, docs []string, metadatas []map[string]any, ids []string) error {
	if len(docs) != len(metadatas) || len(docs) != len(ids) {
		return fmt.Errorf("documents, metadatas and ids must have equal length")
	}
	req := addRequest{Documents: docs, Metadatas: metadatas, IDs: ids}
	return c.do(ctx, http.MethodPost, "/collections/"+collection+"/add", req, nil)
}

func (c *implClient) Query(ctx context.Context, collection string, queryTexts []string, nResults int) (*QueryResult, error) {
	req := queryRequest{
		QueryTexts: queryTexts,
		NResults:   nResults,
		Include:    []string{"documents", "metadatas"},
	}
	var resp struct {
		Results QueryResult `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/collections/"+collection+"/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

func (c *implClient) GetAll(ctx context.Context, collection string) (*CollectionData, error) {
	req := getRequest{Include: []string{"documents", "metadatas"}}
	var resp struct {
		Data CollectionData `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/collections/"+collection+"/get", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// do sends a JSON request and decodes the JSON response into out, when
// out is non-nil. Non-2xx responses surface the service's detail text.
func (c *implClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chroma request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil && detail.Detail != "" {
			return fmt.Errorf("chroma %s %s: %s (status %d)", method, path, detail.Detail, resp.StatusCode)
		}
		return fmt.Errorf("chroma %s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
