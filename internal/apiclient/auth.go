package apiclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// ErrNoUser is returned when a client login succeeds but the body carries
// no user object.
var ErrNoUser = errors.New("login response carried no user")

func (c *Client) Register(ctx context.Context, reg model.Registration) error {
	return c.do(ctx, "register", http.MethodPost, "/api/register", reg, nil)
}

// LoginClient returns the user object of a successful customer login.
func (c *Client) LoginClient(ctx context.Context, creds model.Credentials) (model.User, error) {
	var out struct {
		User *model.User `json:"user"`
	}
	if err := c.do(ctx, "login_client", http.MethodPost, "/api/login/client", creds, &out); err != nil {
		return model.User{}, err
	}
	if out.User == nil {
		return model.User{}, ErrNoUser
	}
	return *out.User, nil
}

func (c *Client) LoginAdmin(ctx context.Context, creds model.Credentials) error {
	return c.do(ctx, "login_admin", http.MethodPost, "/api/login/admin", creds, nil)
}
