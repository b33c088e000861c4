package devserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brisatech/backoffice/internal/devserver"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret123"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	srv, err := devserver.New(adminEmail, adminPassword, "testsecret", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return srv.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": adminEmail, "password": adminPassword,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Data struct {
			Token struct {
				AccessToken string `json:"accessToken"`
			} `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.Token.AccessToken == "" {
		t.Fatal("login returned no token")
	}
	return resp.Data.Token.AccessToken
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "InvalidBody",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request body",
		},
		{
			name:       "MissingPassword",
			body:       map[string]string{"email": adminEmail},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Email and password are required",
		},
		{
			name:       "WrongPassword",
			body:       map[string]string{"email": adminEmail, "password": "nope"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "UnknownEmail",
			body:       map[string]string{"email": "ghost@example.com", "password": adminPassword},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "Success",
			body:       map[string]string{"email": adminEmail, "password": adminPassword},
			wantStatus: http.StatusOK,
		},
		{
			name:       "EmailIsCaseInsensitive",
			body:       map[string]string{"email": "Admin@Example.com", "password": adminPassword},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouter(t)
			rr := doJSON(t, h, http.MethodPost, "/api/auth/login", "", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rr.Code, tt.wantStatus, rr.Body.String())
			}

			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Success bool `json:"success"`
					Data    struct {
						User struct {
							Email string `json:"email"`
						} `json:"user"`
						Token struct {
							AccessToken string `json:"accessToken"`
							TokenType   string `json:"tokenType"`
							ExpiresIn   int64  `json:"expiresIn"`
						} `json:"token"`
					} `json:"data"`
				}
				if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if !resp.Success {
					t.Fatal("success envelope expected")
				}
				if resp.Data.Token.AccessToken == "" || resp.Data.Token.TokenType != "Bearer" {
					t.Fatalf("token block: %+v", resp.Data.Token)
				}
				if resp.Data.User.Email != adminEmail {
					t.Fatalf("user email = %q", resp.Data.User.Email)
				}
				return
			}

			var errResp struct {
				StatusCode int    `json:"statusCode"`
				Message    string `json:"message"`
				ErrorLabel string `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if errResp.StatusCode != tt.wantStatus {
				t.Fatalf("statusCode = %d, want %d", errResp.StatusCode, tt.wantStatus)
			}
			if errResp.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", errResp.Message, tt.wantMsg)
			}
			if errResp.ErrorLabel == "" {
				t.Fatal("error label missing from envelope")
			}
		})
	}
}

func TestBearerAuthMiddleware(t *testing.T) {
	h := newRouter(t)
	token := loginToken(t, h)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"MissingHeader", "", http.StatusUnauthorized},
		{"GarbageToken", "not-a-jwt", http.StatusUnauthorized},
		{"WrongSignature", forgedToken(t), http.StatusUnauthorized},
		{"ValidToken", token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, h, http.MethodGet, "/api/auth/me", tt.token, nil)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rr.Code, tt.wantStatus, rr.Body.String())
			}
		})
	}
}

// forgedToken is structurally a JWT but signed with the wrong secret.
func forgedToken(t *testing.T) string {
	t.Helper()
	srv, err := devserver.New(adminEmail, adminPassword, "a-different-secret", time.Hour)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return loginToken(t, srv.Router())
}

func TestCreateMessageValidation(t *testing.T) {
	h := newRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/api/messages", "", map[string]string{"name": "Ana"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rr.Code, rr.Body.String())
	}

	// validation failures carry a list of messages, not a single string
	var errResp struct {
		Message []string `json:"message"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if len(errResp.Message) == 0 {
		t.Fatal("expected at least one validation message")
	}
}

func TestChangePasswordStatusCodes(t *testing.T) {
	h := newRouter(t)
	token := loginToken(t, h)

	// wrong current password must be a 400, not a 401: the session stays valid
	rr := doJSON(t, h, http.MethodPut, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "wrong", "newPassword": "next",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodPut, "/api/auth/change-password", token, map[string]string{
		"currentPassword": adminPassword, "newPassword": "next",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	// the token survives the change; only the password moved
	rr = doJSON(t, h, http.MethodGet, "/api/auth/me", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("me after change = %d", rr.Code)
	}
}

func TestStatsRoutesAreNotShadowedByID(t *testing.T) {
	h := newRouter(t)
	token := loginToken(t, h)

	// /stack/stats is public and must not be captured by /stack/{id}
	rr := doJSON(t, h, http.MethodGet, "/api/stack/stats", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("stack stats status = %d, body %s", rr.Code, rr.Body.String())
	}
	var stackResp struct {
		Data struct {
			TotalTechnologies int            `json:"totalTechnologies"`
			ByCategory        map[string]int `json:"byCategory"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &stackResp); err != nil {
		t.Fatalf("decode stack stats: %v", err)
	}
	if stackResp.Data.ByCategory == nil {
		t.Fatal("byCategory should be present even when empty")
	}

	rr = doJSON(t, h, http.MethodGet, "/api/messages/stats", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("message stats status = %d, body %s", rr.Code, rr.Body.String())
	}
}

func TestPublicReadsAndProtectedWrites(t *testing.T) {
	h := newRouter(t)
	token := loginToken(t, h)

	project := map[string]any{
		"title":       "Portal",
		"description": "Customer portal",
		"image":       "/img/portal.png",
	}

	// anonymous write is rejected
	rr := doJSON(t, h, http.MethodPost, "/api/projects", "", project)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create = %d, want 401", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/projects", token, project)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create = %d, body %s", rr.Code, rr.Body.String())
	}
	var created struct {
		Data struct {
			ID       string `json:"id"`
			IsActive bool   `json:"isActive"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created project: %v", err)
	}
	if created.Data.ID == "" {
		t.Fatal("created project has no id")
	}
	if !created.Data.IsActive {
		t.Fatal("isActive should default to true")
	}

	// anonymous read sees it
	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/projects/%s", created.Data.ID), "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("anonymous read = %d", rr.Code)
	}

	// anonymous delete is rejected, authorized delete works
	rr = doJSON(t, h, http.MethodDelete, "/api/projects/"+created.Data.ID, "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous delete = %d, want 401", rr.Code)
	}
	rr = doJSON(t, h, http.MethodDelete, "/api/projects/"+created.Data.ID, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete = %d, body %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, h, http.MethodDelete, "/api/projects/"+created.Data.ID, token, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("double delete = %d, want 404", rr.Code)
	}
}
