package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/salemerge/quotedesk/internal/client/models"
)

// GenerateVideo submits a quote. Besides the usual envelope the backend
// may report failure as message.status.
func (c *HTTPClient) GenerateVideo(ctx context.Context, req models.GenerateVideoRequest) (*models.GenerateResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/videos/generate", req)
	if err != nil {
		return nil, err
	}

	res := &models.GenerateResult{Message: env.stringMessage()}
	if v, ok := env.get("message"); ok {
		var nested struct {
			Status  json.RawMessage `json:"status"`
			Message json.RawMessage `json:"message"`
		}
		if json.Unmarshal(v, &nested) == nil {
			if !isNull(nested.Message) && len(nested.Message) > 0 {
				res.Message = rawText(nested.Message)
			}
			if !isNull(nested.Status) && len(nested.Status) > 0 && falsy(nested.Status) {
				return nil, &APIError{Status: http.StatusOK, Message: res.Message, Raw: env.raw}
			}
		}
	}
	if v, ok := env.lookup("downloadUrl"); ok {
		res.DownloadURL = rawText(v)
	}
	return res, nil
}

// ListVideos returns every generated video of userID. The list is
// looked up under message.videos, data.videos, data and message.
func (c *HTTPClient) ListVideos(ctx context.Context, userID int64) ([]models.VideoRecord, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/videos/user/%d", userID), nil)
	if err != nil {
		return nil, err
	}

	var candidates []json.RawMessage
	for _, key := range []string{"message", "data"} {
		v, ok := env.get(key)
		if !ok {
			continue
		}
		var nested struct {
			Videos json.RawMessage `json:"videos"`
		}
		if json.Unmarshal(v, &nested) == nil && isArray(nested.Videos) {
			candidates = append(candidates, nested.Videos)
		}
	}
	for _, key := range []string{"data", "message"} {
		if v, ok := env.get(key); ok && isArray(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return []models.VideoRecord{}, nil
	}

	var out []models.VideoRecord
	if err := decodeInto(candidates[0], &out); err != nil {
		return nil, err
	}
	return out, nil
}
