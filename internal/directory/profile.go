package directory

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tranvq/pipeboard/internal/models"
)

// Profile is the caller's own editable profile.
type Profile struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ProfilePatch updates profile fields; nil pointers are omitted from the
// request body.
type ProfilePatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// MyProfile fetches the caller's profile.
func (c *Client) MyProfile(ctx context.Context) (*Profile, error) {
	var res Profile
	if err := c.do(ctx, "GET", "/profiles/me", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateMyProfile applies a partial update to the caller's profile.
func (c *Client) UpdateMyProfile(ctx context.Context, patch ProfilePatch) (*Profile, error) {
	var res Profile
	if err := c.do(ctx, "PUT", "/profiles/me", patch, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ActivityLogsRequest pages through the caller's activity feed; Type
// optionally filters by entry type.
type ActivityLogsRequest struct {
	Page     int
	PageSize int
	Type     string
}

// MyActivityLogs fetches one page of the caller's activity feed.
func (c *Client) MyActivityLogs(ctx context.Context, req ActivityLogsRequest) ([]*models.ActivityLog, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 10
	}
	params := url.Values{}
	params.Set("page", fmt.Sprint(req.Page))
	params.Set("pageSize", fmt.Sprint(req.PageSize))
	if req.Type != "" {
		params.Set("type", req.Type)
	}

	var res struct {
		Logs []*models.ActivityLog `json:"logs"`
	}
	if err := c.do(ctx, "GET", "/profiles/me/logs?"+params.Encode(), nil, &res); err != nil {
		return nil, err
	}
	return res.Logs, nil
}
