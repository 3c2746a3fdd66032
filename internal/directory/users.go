package directory

import (
	"context"
	"fmt"

	"github.com/tranvq/pipeboard/internal/models"
)

// ListUsers fetches one page of the user directory.
func (c *Client) ListUsers(ctx context.Context, page, limit int) ([]*models.User, error) {
	var res struct {
		Users []*models.User `json:"users"`
	}
	path := fmt.Sprintf("/users?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, "GET", path, nil, &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

// ResolveNames builds an id → display-name map from a user list. Callers
// that fail to fetch the directory pass nil and fall back to raw ids via
// the map's zero value.
func ResolveNames(users []*models.User) map[int]string {
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	return names
}

// NameOrID returns the resolved display name for id, or "User <id>" when
// the directory lookup failed or the id is unknown.
func NameOrID(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("User %d", id)
}
