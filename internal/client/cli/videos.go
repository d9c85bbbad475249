package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/salemerge/quotedesk/internal/client/services"
	"github.com/salemerge/quotedesk/internal/common"
)

const videosUsage = "Usage: videos [page N | next | prev | play ID]"

// Videos is the gallery of the logged-in user's generated videos. Without
// arguments it reloads the list.
func (a *App) Videos(ctx context.Context, args []string) error {
	if len(args) == 0 {
		if err := a.gallery.Load(ctx); err != nil {
			return err
		}
		printVideos(a.out, a.gallery)
		return nil
	}

	switch args[0] {
	case "page":
		if len(args) != 2 {
			a.println(videosUsage)
			return nil
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || !a.gallery.SetPage(n) {
			a.printf("Pick a page between 1 and %d.\n", a.gallery.TotalPages())
			return nil
		}

	case "next":
		if !a.gallery.Next() {
			a.println("Already on the last page.")
			return nil
		}

	case "prev":
		if !a.gallery.Prev() {
			a.println("Already on the first page.")
			return nil
		}

	case "play":
		if len(args) != 2 {
			a.println(videosUsage)
			return nil
		}
		id, err := parseID(args[1])
		if err != nil {
			a.println(err.Error())
			return err
		}
		if a.gallery.Total() == 0 {
			if err := a.gallery.Load(ctx); err != nil {
				return err
			}
		}
		url, err := a.gallery.Open(id)
		switch {
		case errors.Is(err, services.ErrVideoNotReady):
			a.println("This video is still being generated.")
			return err
		case errors.Is(err, common.ErrNotFound):
			a.println("Video not found.")
			return err
		case err != nil:
			return err
		}
		a.printf("Watch: %s\n", url)
		return nil

	default:
		a.println(videosUsage)
		return nil
	}

	printVideos(a.out, a.gallery)
	return nil
}
