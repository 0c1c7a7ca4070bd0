package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/transport/wire"
)

// Profile resolves an author by handle.
func (c *Client) Profile(ctx context.Context, handle string) (wire.Profile, error) {
	var out wire.Profile
	err := c.do(ctx, request{method: http.MethodGet, path: "/profiles/" + url.PathEscape(handle), out: &out})
	if err != nil {
		return wire.Profile{}, storeFailure("get profile", err)
	}
	return out, nil
}

// ProfileWorks lists an author's published works, newest first.
func (c *Client) ProfileWorks(ctx context.Context, handle string) ([]domain.Work, error) {
	var out []wire.Work
	err := c.do(ctx, request{method: http.MethodGet, path: "/profiles/" + url.PathEscape(handle) + "/works", out: &out})
	if err != nil {
		return nil, storeFailure("profile works", err)
	}
	works := wire.ToWorks(out)
	domain.SortByUpdatedDesc(works)
	return works, nil
}
