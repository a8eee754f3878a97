package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sellsense/knowbase/ai"
	"github.com/sellsense/knowbase/core"
)

// QdrantConfig holds the connection settings for a remote Qdrant instance.
type QdrantConfig struct {
	// URL is the base HTTP endpoint, e.g. "http://localhost:6333".
	URL string
	// APIKey is sent as the api-key header when non-empty.
	APIKey string
	// Collection names the collection to use. Defaults to "knowbase".
	Collection string
	// Timeout bounds each HTTP request. Defaults to 30s.
	Timeout time.Duration
}

const defaultCollection = "knowbase"

// Qdrant is an Index backed by a remote Qdrant instance over its REST API.
// The collection is created lazily on the first Add, when the vector
// dimension is known.
type Qdrant struct {
	config   QdrantConfig
	client   *http.Client
	embedder ai.Embedder
	logger   *slog.Logger

	mu      sync.Mutex
	created bool
	dim     int
}

// NewQdrant creates a client for the configured instance. It does not touch
// the network; call Ping to verify reachability.
func NewQdrant(config QdrantConfig, embedder ai.Embedder) (*Qdrant, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config.URL == "" {
		return nil, fmt.Errorf("qdrant URL required")
	}
	if config.Collection == "" {
		config.Collection = defaultCollection
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	config.URL = strings.TrimRight(config.URL, "/")

	return &Qdrant{
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
		embedder: embedder,
		logger:   slog.Default().With("component", "vectorindex.qdrant"),
	}, nil
}

// Ping verifies the instance answers its collections listing endpoint.
func (q *Qdrant) Ping(ctx context.Context) error {
	var response struct {
		Status string `json:"status"`
	}
	if err := q.do(ctx, http.MethodGet, "/collections", nil, &response); err != nil {
		return fmt.Errorf("pinging qdrant: %w", err)
	}
	return nil
}

func (q *Qdrant) Add(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	type point struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	ids := make([]string, 0, len(docs))
	points := make([]point, 0, len(docs))
	for _, doc := range docs {
		vector := doc.Vector
		if vector == nil {
			var err error
			vector, err = q.embedder.EmbedText(ctx, doc.Text)
			if err != nil {
				q.logger.Warn("embedding failed, storing zero vector", "error", err)
				vector = make([]float32, q.dimensionHint())
			}
		}

		id := doc.ID
		if id == "" {
			id = uuid.NewString()
		}
		ids = append(ids, id)

		// With no collection yet and no embedding, the vector dimension is
		// unknown; the document cannot be stored remotely, but it must not
		// fail the batch.
		if len(vector) == 0 {
			q.logger.Warn("skipping unembeddable document, collection dimension unknown", "id", id)
			continue
		}

		if err := q.ensureCollection(ctx, len(vector)); err != nil {
			return nil, err
		}

		points = append(points, point{
			ID:     id,
			Vector: vector,
			Payload: map[string]any{
				"text":        doc.Text,
				"filename":    doc.Metadata.Filename,
				"entityId":    doc.Metadata.EntityID,
				"contentType": string(doc.Metadata.ContentType),
				"uploadedAt":  doc.Metadata.UploadedAt.Format(time.RFC3339),
			},
		})
	}

	if len(points) == 0 {
		return ids, nil
	}

	body := map[string]any{"points": points}
	path := fmt.Sprintf("/collections/%s/points?wait=true", q.config.Collection)
	if err := q.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return nil, fmt.Errorf("upserting points: %w", err)
	}
	return ids, nil
}

func (q *Qdrant) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVector, err := q.embedder.EmbedText(ctx, query)
	if err != nil {
		q.logger.Warn("query embedding failed, returning no results", "error", err)
		return nil, nil
	}
	if IsZeroVector(queryVector) {
		return nil, nil
	}

	body := map[string]any{
		"vector":       queryVector,
		"limit":        k,
		"with_payload": true,
	}
	var response struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/search", q.config.Collection)
	if err := q.do(ctx, http.MethodPost, path, body, &response); err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	results := make([]Result, 0, len(response.Result))
	for _, hit := range response.Result {
		results = append(results, Result{
			ID:         fmt.Sprint(hit.ID),
			Text:       payloadString(hit.Payload, "text"),
			Metadata:   metadataFromPayload(hit.Payload),
			Similarity: hit.Score,
		})
	}
	return results, nil
}

func (q *Qdrant) Update(ctx context.Context, id, text string, metadata core.ChunkMetadata) error {
	_, err := q.Add(ctx, []Document{{ID: id, Text: text, Metadata: metadata}})
	return err
}

func (q *Qdrant) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := map[string]any{"points": ids}
	path := fmt.Sprintf("/collections/%s/points/delete?wait=true", q.config.Collection)
	if err := q.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("deleting points: %w", err)
	}
	return nil
}

func (q *Qdrant) Clear(ctx context.Context) error {
	path := fmt.Sprintf("/collections/%s", q.config.Collection)
	if err := q.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	q.mu.Lock()
	q.created = false
	q.mu.Unlock()
	return nil
}

func (q *Qdrant) Stats(ctx context.Context) (Stats, error) {
	body := map[string]any{"exact": true}
	var response struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/collections/%s/points/count", q.config.Collection)
	if err := q.do(ctx, http.MethodPost, path, body, &response); err != nil {
		// A missing collection means nothing was indexed yet.
		return Stats{DocumentCount: 0, Mode: ModeRemote}, nil
	}
	return Stats{DocumentCount: response.Result.Count, Mode: ModeRemote}, nil
}

func (q *Qdrant) ensureCollection(ctx context.Context, dimension int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.created {
		return nil
	}
	if dimension <= 0 {
		return fmt.Errorf("cannot create collection with dimension %d", dimension)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	path := fmt.Sprintf("/collections/%s", q.config.Collection)
	err := q.do(ctx, http.MethodPut, path, body, nil)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("creating collection: %w", err)
	}
	q.created = true
	q.dim = dimension
	return nil
}

// dimensionHint returns the dimension of the collection, or 0 when none was
// created yet.
func (q *Qdrant) dimensionHint() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dim
}

func (q *Qdrant) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, q.config.URL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if q.config.APIKey != "" {
		request.Header.Set("api-key", q.config.APIKey)
	}

	response, err := q.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("qdrant returned %d: %s", response.StatusCode, strings.TrimSpace(string(payload)))
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func payloadString(payload map[string]any, key string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return ""
}

func metadataFromPayload(payload map[string]any) core.ChunkMetadata {
	metadata := core.ChunkMetadata{
		Filename:    payloadString(payload, "filename"),
		EntityID:    payloadString(payload, "entityId"),
		ContentType: core.ContentType(payloadString(payload, "contentType")),
	}
	if raw := payloadString(payload, "uploadedAt"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			metadata.UploadedAt = parsed
		}
	}
	return metadata
}

var _ Index = (*Qdrant)(nil)
