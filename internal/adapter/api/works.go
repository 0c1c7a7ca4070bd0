package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

// CreateWork stores a new work authored by the caller and returns it with
// its server-assigned id and timestamps.
func (c *Client) CreateWork(ctx context.Context, w *domain.Work) (*domain.Work, error) {
	var out wire.Work
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/works",
		body: wire.CreateWorkRequest{
			Title:    w.Title,
			Type:     w.Type,
			Status:   w.Status,
			Chapters: w.Chapters,
			Excerpt:  w.Excerpt,
		},
		out: &out,
	})
	if err != nil {
		return nil, storeFailure("create work", err)
	}
	return out.ToDomain(), nil
}

// SaveWork merges patch into the stored work.
func (c *Client) SaveWork(ctx context.Context, id uuid.UUID, patch domain.WorkPatch) error {
	err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/works/" + id.String(),
		body:   wire.FromPatch(patch),
	})
	return storeFailure("save work", err)
}

// LoadWork fetches one work. A missing or hidden work is domain.ErrNotFound.
func (c *Client) LoadWork(ctx context.Context, id uuid.UUID) (*domain.Work, error) {
	var out wire.Work
	if err := c.do(ctx, request{method: http.MethodGet, path: "/works/" + id.String(), out: &out}); err != nil {
		return nil, storeFailure("load work", err)
	}
	return out.ToDomain(), nil
}

// DeleteWork removes a work permanently.
func (c *Client) DeleteWork(ctx context.Context, id uuid.UUID) error {
	err := c.do(ctx, request{method: http.MethodDelete, path: "/works/" + id.String()})
	return storeFailure("delete work", err)
}

// QueryWorksByAuthor lists an author's works, newest first. An empty status
// lists everything the caller is allowed to see.
func (c *Client) QueryWorksByAuthor(ctx context.Context, authorID uuid.UUID, status domain.WorkStatus) ([]domain.Work, error) {
	q := url.Values{}
	q.Set("authorId", authorID.String())
	if status != "" {
		q.Set("status", string(status))
	}
	return c.listWorks(ctx, "query works by author", q)
}

// QueryPublishedWorks returns the feed. An empty type means all types.
func (c *Client) QueryPublishedWorks(ctx context.Context, typ domain.WorkType, limit int) ([]domain.Work, error) {
	q := url.Values{}
	q.Set("status", string(domain.WorkStatusPublished))
	if typ != "" {
		q.Set("type", string(typ))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.listWorks(ctx, "query published works", q)
}

// ToggleLike flips the caller's like and returns the new membership and
// count.
func (c *Client) ToggleLike(ctx context.Context, id uuid.UUID) (bool, int, error) {
	var out wire.LikeResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/works/" + id.String() + "/like", out: &out})
	if err != nil {
		return false, 0, storeFailure("toggle like", err)
	}
	return out.Liked, out.LikesCount, nil
}

func (c *Client) listWorks(ctx context.Context, op string, q url.Values) ([]domain.Work, error) {
	var out []wire.Work
	if err := c.do(ctx, request{method: http.MethodGet, path: "/works?" + q.Encode(), out: &out}); err != nil {
		return nil, storeFailure(op, err)
	}
	works := wire.ToWorks(out)
	domain.SortByUpdatedDesc(works)
	return works, nil
}

// storeFailure wraps transport and server errors as StoreErrors. The domain
// sentinels stay matchable through errors.Is.
func storeFailure(op string, err error) error {
	return domain.NewStoreError(op, err)
}
