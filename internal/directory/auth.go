package directory

import (
	"context"
	"regexp"

	"github.com/tranvq/pipeboard/internal/models"
)

// LoginRequest carries credentials. TOTPCode stays empty on the first
// attempt; when the account has 2FA enabled the response (or error) signals
// that a retry with the code is required.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// LoginResponse is a successful authentication result. NeedTOTP set (or
// the user carrying has_2fa) means the token is not yet issued and the
// caller must retry with a TOTP code.
type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	NeedTOTP bool         `json:"need_totp,omitempty"`
}

// RequiresTOTP reports whether the response demands a second attempt with
// a TOTP code.
func (r *LoginResponse) RequiresTOTP() bool {
	return r.NeedTOTP || (r.User != nil && r.User.Has2FA && r.Token == "")
}

var totpErrPattern = regexp.MustCompile(`(?i)2fa|totp`)

// IsTOTPError reports whether err is the API telling us to retry the login
// with a TOTP code.
func IsTOTPError(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && totpErrPattern.MatchString(apiErr.Message)
}

// Login authenticates and, on success, installs the returned token on the
// client for subsequent calls.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var res LoginResponse
	if err := c.do(ctx, "POST", "/auth/login", req, &res); err != nil {
		return nil, err
	}
	if res.Token != "" {
		c.token = res.Token
	}
	return &res, nil
}

// WhoAmI returns the authenticated user.
func (c *Client) WhoAmI(ctx context.Context) (*models.User, error) {
	var res struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, "GET", "/auth/me", nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}
