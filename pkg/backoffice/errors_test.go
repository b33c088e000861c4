package backoffice

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "body string message wins over canned text",
			status: http.StatusBadRequest,
			body:   `{"statusCode":400,"message":"Email is required","error":"Bad Request"}`,
			want:   "Email is required",
		},
		{
			name:   "first entry of a validation list",
			status: http.StatusBadRequest,
			body:   `{"statusCode":400,"message":["Name is required","Email is invalid"],"error":"Bad Request"}`,
			want:   "Name is required",
		},
		{
			name:   "empty body falls back to canned 404 text",
			status: http.StatusNotFound,
			body:   "",
			want:   msgNotFound,
		},
		{
			name:   "non-JSON body falls back to canned text",
			status: http.StatusInternalServerError,
			body:   "upstream exploded",
			want:   msgServerError,
		},
		{
			name:   "empty message list falls back to canned text",
			status: http.StatusBadRequest,
			body:   `{"statusCode":400,"message":[],"error":"Bad Request"}`,
			want:   msgInvalidInput,
		},
		{
			name:   "401 canned text",
			status: http.StatusUnauthorized,
			body:   `{}`,
			want:   msgUnauthorized,
		},
		{
			name:   "403 canned text",
			status: http.StatusForbidden,
			body:   "",
			want:   msgForbidden,
		},
		{
			name:   "409 canned text",
			status: http.StatusConflict,
			body:   "",
			want:   msgConflict,
		},
		{
			name:   "unmapped status gets the generic text",
			status: http.StatusTeapot,
			body:   "",
			want:   msgUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.status, []byte(tt.body))
			if got.Message != tt.want {
				t.Fatalf("message = %q, want %q", got.Message, tt.want)
			}
			if got.Status != tt.status {
				t.Fatalf("status = %d, want %d", got.Status, tt.status)
			}
			if got.Error() != tt.want {
				t.Fatalf("Error() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}

func TestConnectivityError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := connectivityError(cause)

	if err.Message != msgConnectivity {
		t.Fatalf("message = %q, want %q", err.Message, msgConnectivity)
	}
	if err.Status != 0 {
		t.Fatalf("status = %d, want 0 (no response)", err.Status)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the transport error to be wrapped")
	}
}

func TestErrorPredicates(t *testing.T) {
	notFound := translateError(http.StatusNotFound, nil)
	denied := translateError(http.StatusUnauthorized, nil)

	if !IsNotFound(notFound) {
		t.Fatal("IsNotFound should match a 404 APIError")
	}
	if IsNotFound(denied) {
		t.Fatal("IsNotFound should not match a 401")
	}
	if !IsUnauthorized(denied) {
		t.Fatal("IsUnauthorized should match a 401 APIError")
	}
	if IsUnauthorized(fmt.Errorf("plain error")) {
		t.Fatal("IsUnauthorized should not match a non-APIError")
	}

	// predicates must see through wrapping
	wrapped := fmt.Errorf("loading project: %w", notFound)
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound should match through wrapping")
	}
}
