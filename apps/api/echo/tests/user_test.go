package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/collabrate/collabrate/core/user"
	testutil "github.com/collabrate/collabrate/tests"
)

func TestUserLogin(t *testing.T) {
	testutil.CreateUser(t, usrRepo, "login_user", "login_user@student.example.edu", "G00d&Secret", user.TypeStudent, true)
	testutil.CreateUser(t, usrRepo, "login_off", "login_off@student.example.edu", "G00d&Secret", user.TypeStudent, false)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "valid credentials", body: `{"username": "login_user", "password": "G00d&Secret"}`, wantCode: http.StatusOK},
		{name: "login by email", body: `{"username": "login_user@student.example.edu", "password": "G00d&Secret"}`, wantCode: http.StatusOK},
		{name: "wrong password", body: `{"username": "login_user", "password": "nope"}`, wantCode: http.StatusBadRequest, wantErr: "authentication failed"},
		{name: "unknown user", body: `{"username": "ghost", "password": "whatever"}`, wantCode: http.StatusBadRequest, wantErr: "authentication failed"},
		{name: "deactivated account", body: `{"username": "login_off", "password": "G00d&Secret"}`, wantCode: http.StatusForbidden, wantErr: "account deactivated"},
		{name: "missing fields", body: `{}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newJSONRequest(http.MethodPost, "/v1/users/login", "", tt.body)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErr != "" {
				if got := decodeErr(t, rec).Error; got != tt.wantErr {
					t.Errorf("error = %q, want %q", got, tt.wantErr)
				}
				return
			}
			if tt.wantCode == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling response: %v", err)
				}
				if resp.Token == "" {
					t.Error("login returned an empty token")
				}
			}
		})
	}
}

func TestUserRegister(t *testing.T) {
	body := `{
		"username": "reg_user",
		"email": "reg_user@student.example.edu",
		"user_type": "student",
		"password": "G00d&Secret",
		"password_confirm": "G00d&Secret"
	}`

	req, rec := newJSONRequest(http.MethodPost, "/v1/users/register", "", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created user.User
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}
	if created.ID == "" || created.Username != "reg_user" || !created.IsActive {
		t.Errorf("created user = %+v", created)
	}

	t.Run("duplicate username", func(t *testing.T) {
		req, rec := newJSONRequest(http.MethodPost, "/v1/users/register", "", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
		if got := decodeFields(t, rec)["username"]; got == "" {
			t.Errorf("expected a username field error, got %s", rec.Body.String())
		}
	})

	t.Run("invalid user type", func(t *testing.T) {
		req, rec := newJSONRequest(http.MethodPost, "/v1/users/register", "", `{
			"username": "reg_admin",
			"email": "reg_admin@student.example.edu",
			"user_type": "admin",
			"password": "G00d&Secret",
			"password_confirm": "G00d&Secret"
		}`)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
		}
	})
}
