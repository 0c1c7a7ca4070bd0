package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

// ListSaves returns the caller's saves, optionally for one story only.
func (c *Client) ListSaves(ctx context.Context, storyID uuid.UUID) ([]domain.Save, error) {
	path := "/saves"
	if storyID != uuid.Nil {
		path += "?" + url.Values{"storyId": {storyID.String()}}.Encode()
	}

	var out []wire.Save
	if err := c.do(ctx, request{method: http.MethodGet, path: path, out: &out}); err != nil {
		return nil, storeFailure("list saves", err)
	}
	saves := make([]domain.Save, 0, len(out))
	for _, s := range out {
		saves = append(saves, s.ToDomain())
	}
	return saves, nil
}

// CreateSave bookmarks a story. The server snapshots the work itself.
func (c *Client) CreateSave(ctx context.Context, storyID uuid.UUID) (domain.Save, error) {
	var out wire.Save
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/saves",
		body:   wire.CreateSaveRequest{StoryID: storyID},
		out:    &out,
	})
	if err != nil {
		return domain.Save{}, storeFailure("create save", err)
	}
	return out.ToDomain(), nil
}

// DeleteSave removes one of the caller's saves.
func (c *Client) DeleteSave(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, request{method: http.MethodDelete, path: "/saves/" + id.String()})
	return storeFailure("delete save", err)
}

// GetProgress returns where the caller stopped reading a story.
func (c *Client) GetProgress(ctx context.Context, storyID uuid.UUID) (domain.ReadingProgress, error) {
	var out wire.Progress
	if err := c.do(ctx, request{method: http.MethodGet, path: "/progress/" + storyID.String(), out: &out}); err != nil {
		return domain.ReadingProgress{}, storeFailure("get progress", err)
	}
	return out.ToDomain(), nil
}

// UpsertProgress records the chapter the caller is reading.
func (c *Client) UpsertProgress(ctx context.Context, storyID uuid.UUID, idx int) error {
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/progress/" + storyID.String(),
		body:   wire.ProgressRequest{LastChapterIndex: idx},
	})
	return storeFailure("upsert progress", err)
}
