package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tranvq/pipeboard/internal/models"
)

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Login != "ana" || req.Password != "secret" {
			t.Errorf("credentials = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{
			Token: "tok-123",
			User:  &models.User{ID: 7, Username: "ana"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.Login(context.Background(), LoginRequest{Login: "ana", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-123" || res.RequiresTOTP() {
		t.Fatalf("res = %+v", res)
	}
	if c.Token() != "tok-123" {
		t.Fatalf("token not installed: %q", c.Token())
	}
}

func TestLoginTOTPFlaggedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.TOTPCode == "" {
			_ = json.NewEncoder(w).Encode(LoginResponse{NeedTOTP: true})
			return
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{Token: "tok-2fa"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	ctx := context.Background()

	res, err := c.Login(ctx, LoginRequest{Login: "ana", Password: "secret"})
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if !res.RequiresTOTP() {
		t.Fatal("response must demand a TOTP retry")
	}
	if c.Token() != "" {
		t.Fatal("no token may be installed before the TOTP retry")
	}

	res, err = c.Login(ctx, LoginRequest{Login: "ana", Password: "secret", TOTPCode: "123456"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Token != "tok-2fa" || c.Token() != "tok-2fa" {
		t.Fatalf("retry token = %q / %q", res.Token, c.Token())
	}
}

func TestLoginTOTPErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"2FA code required"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Login(context.Background(), LoginRequest{Login: "ana", Password: "secret"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsTOTPError(err) {
		t.Fatalf("IsTOTPError = false for %v", err)
	}
}

func TestIsTOTPError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&APIError{Status: 401, Message: "TOTP code invalid"}, true},
		{&APIError{Status: 401, Message: "2fa required"}, true},
		{&APIError{Status: 401, Message: "invalid credentials"}, false},
		{errors.New("2fa"), false},
	}
	for _, tc := range cases {
		if got := IsTOTPError(tc.err); got != tc.want {
			t.Errorf("IsTOTPError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestAPIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no such user"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	_, err := c.WhoAmI(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Status != 404 || apiErr.Message != "no such user" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestBearerHeaderSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"user":{"id":7}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-abc")
	if _, err := c.WhoAmI(context.Background()); err != nil {
		t.Fatalf("WhoAmI: %v", err)
	}
	if got != "Bearer tok-abc" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "50" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"users":[{"id":1,"username":"ana"},{"id":2,"username":"ben"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	users, err := c.ListUsers(context.Background(), 2, 50)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 || users[1].Username != "ben" {
		t.Fatalf("users = %+v", users)
	}
}

func TestMyActivityLogsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("pageSize") != "10" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		if q.Has("type") {
			t.Error("empty type filter must be omitted")
		}
		_, _ = w.Write([]byte(`{"logs":[{"id":1,"type":"login","message":"signed in"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	logs, err := c.MyActivityLogs(context.Background(), ActivityLogsRequest{})
	if err != nil {
		t.Fatalf("MyActivityLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Type != "login" {
		t.Fatalf("logs = %+v", logs)
	}
}

func TestUpdateMyProfileOmitsNilFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if _, ok := body["last_name"]; ok {
			t.Error("nil patch field must be omitted")
		}
		if body["first_name"] != "Ana" {
			t.Errorf("body = %v", body)
		}
		_, _ = w.Write([]byte(`{"first_name":"Ana"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	first := "Ana"
	p, err := c.UpdateMyProfile(context.Background(), ProfilePatch{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateMyProfile: %v", err)
	}
	if p.FirstName != "Ana" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestResolveNames(t *testing.T) {
	names := ResolveNames([]*models.User{
		{ID: 1, Profile: models.UserProfile{FirstName: "Ana", LastName: "Silva"}},
		{ID: 2, Username: "ben"},
	})
	if NameOrID(names, 1) != "Ana Silva" || NameOrID(names, 2) != "ben" {
		t.Fatalf("names = %v", names)
	}
	if NameOrID(names, 99) != "User 99" {
		t.Fatalf("unknown id = %q", NameOrID(names, 99))
	}
	if NameOrID(nil, 5) != "User 5" {
		t.Fatal("nil map must fall back to raw id")
	}
}
