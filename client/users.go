package client

import (
	"context"
	"net/url"
	"strconv"
)

// UserService handles monitored-user directory reads.
type UserService struct {
	c *Client
}

func listParams(opts *ListOptions) url.Values {
	params := url.Values{}
	if opts == nil {
		return params
	}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}
	if opts.SortDir != "" {
		params.Set("sort_dir", opts.SortDir)
	}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	return params
}

// List returns a page of users matching the given options.
func (s *UserService) List(ctx context.Context, opts *ListOptions) (*Page[User], error) {
	var resp Page[User]
	if err := s.c.get(ctx, "/api/v1/users", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Devices returns a page of the user's devices.
func (s *UserService) Devices(ctx context.Context, userID string, opts *ListOptions) (*Page[Device], error) {
	var resp Page[Device]
	if err := s.c.get(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/devices", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Timeline returns the user's audit timeline, newest first.
func (s *UserService) Timeline(ctx context.Context, userID string, limit int) ([]AuditEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Data []AuditEntry `json:"data"`
	}
	if err := s.c.get(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/timeline", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
