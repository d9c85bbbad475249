package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/salemerge/quotedesk/internal/client/api"
	"github.com/salemerge/quotedesk/internal/client/models"
	"github.com/salemerge/quotedesk/internal/client/session"
	"github.com/salemerge/quotedesk/internal/common"
	"github.com/salemerge/quotedesk/internal/logging"
)

const (
	GalleryPageSize    = 9
	generatedTitle     = "Generated Video"
	generatedFallback  = "Generated video"
	drivePreviewFormat = "https://drive.google.com/file/d/%s/preview"
)

var (
	driveFileRe = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
	driveOpenRe = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// NormalizeStatus maps a backend status onto the three gallery states.
// Unknown values count as processing.
func NormalizeStatus(s string) models.VideoStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DONE", "COMPLETED":
		return models.VideoCompleted
	case "FAILED", "ERROR":
		return models.VideoFailed
	default:
		return models.VideoProcessing
	}
}

// EmbedURL rewrites a Drive sharing link into its preview URL. Links it
// does not recognise are returned unchanged.
func EmbedURL(link string) string {
	if m := driveFileRe.FindStringSubmatch(link); m != nil {
		return fmt.Sprintf(drivePreviewFormat, m[1])
	}
	if m := driveOpenRe.FindStringSubmatch(link); m != nil {
		return fmt.Sprintf(drivePreviewFormat, m[1])
	}
	return link
}

// describe pulls the quote name out of input_text, which is normally a
// JSON object encoded as a string.
func describe(raw json.RawMessage) string {
	text := string(raw)
	var s string
	if json.Unmarshal(raw, &s) == nil {
		text = s
	}
	var parsed struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil || parsed.Name == "" {
		return generatedFallback
	}
	return parsed.Name
}

func toVideo(r models.VideoRecord) models.Video {
	return models.Video{
		ID:          r.ID,
		Title:       generatedTitle,
		Description: describe(r.InputText),
		CreatedAt:   r.CreatedAt,
		Status:      NormalizeStatus(r.Status),
		DriveURL:    strings.TrimSpace(r.DriveLink),
	}
}

// Gallery lists the current user's generated videos, paged on the client.
type Gallery struct {
	api   api.Client
	store SessionStore
	toast Notifier
	log   logging.Logger

	videos  []models.Video
	page    int
	loading bool
}

func NewGallery(c api.Client, store SessionStore, n Notifier, log logging.Logger) *Gallery {
	return &Gallery{api: c, store: store, toast: n, log: log, page: 1}
}

// Load fetches every video of the session user and returns to page 1.
func (g *Gallery) Load(ctx context.Context) error {
	sess, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess.UserID == 0 {
		return session.ErrNoSession
	}

	g.loading = true
	defer func() { g.loading = false }()

	recs, err := g.api.ListVideos(ctx, sess.UserID)
	if err != nil {
		g.log.Warn(ctx, "load videos failed", "user_id", sess.UserID, "error", err)
		g.videos = nil
		g.page = 1
		g.toast.Error(api.ErrorMessage(err, "Failed to load videos"), titleError)
		return fmt.Errorf("load videos: %w", err)
	}

	videos := make([]models.Video, 0, len(recs))
	for _, r := range recs {
		videos = append(videos, toVideo(r))
	}
	g.videos = videos
	g.page = 1
	return nil
}

func (g *Gallery) Total() int { return len(g.videos) }

func (g *Gallery) TotalPages() int {
	if len(g.videos) == 0 {
		return 1
	}
	return (len(g.videos) + GalleryPageSize - 1) / GalleryPageSize
}

func (g *Gallery) Page() int { return g.page }

// PageItems returns the videos of the current page.
func (g *Gallery) PageItems() []models.Video {
	start := (g.page - 1) * GalleryPageSize
	if start >= len(g.videos) {
		return []models.Video{}
	}
	end := min(start+GalleryPageSize, len(g.videos))
	out := make([]models.Video, end-start)
	copy(out, g.videos[start:end])
	return out
}

// SetPage ignores pages outside 1..TotalPages.
func (g *Gallery) SetPage(n int) bool {
	if n < 1 || n > g.TotalPages() {
		return false
	}
	g.page = n
	return true
}

func (g *Gallery) Next() bool { return g.SetPage(g.page + 1) }
func (g *Gallery) Prev() bool { return g.SetPage(g.page - 1) }

func (g *Gallery) Loading() bool { return g.loading }

// Open returns the embeddable URL of a completed video.
func (g *Gallery) Open(id int64) (string, error) {
	for _, v := range g.videos {
		if v.ID != id {
			continue
		}
		if v.Status != models.VideoCompleted {
			return "", ErrVideoNotReady
		}
		if v.DriveURL == "" {
			g.toast.Error("Video URL not found. The video might still be processing or the link is missing.", titleError)
			return "", ErrNoVideoURL
		}
		return EmbedURL(v.DriveURL), nil
	}
	return "", fmt.Errorf("video %d: %w", id, common.ErrNotFound)
}
