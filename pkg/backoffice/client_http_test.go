package backoffice_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brisatech/backoffice/pkg/backoffice"
	"github.com/brisatech/backoffice/pkg/session"
)

func newClient(t *testing.T, srv *httptest.Server, store session.Store) *backoffice.Client {
	t.Helper()
	if store == nil {
		store = session.NewMemoryStore()
	}
	client, err := backoffice.NewClient(backoffice.Config{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, store, srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return client
}

func ok(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"success":true,"data":%s}`, data)
}

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		ok(w, `{"id":"p1","title":"Site"}`)
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	if err := store.Save("tok-123", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	client := newClient(t, srv, store)

	if _, err := client.Projects.Get(context.Background(), "p1"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestClient_AnonymousSendsNoToken(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusCreated)
		ok(w, `{"id":"m1","name":"Ana","email":"ana@example.com","message":"Hi","status":"new"}`)
	}))
	defer srv.Close()

	client := newClient(t, srv, nil)
	m, err := client.Messages.Create(context.Background(), backoffice.MessageInput{
		Name: "Ana", Email: "ana@example.com", Message: "Hi",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sawAuth {
		t.Fatal("anonymous request must not carry an Authorization header")
	}
	if m.ID != "m1" || m.LegacyID != "m1" {
		t.Fatalf("ids not normalized: id=%q _id=%q", m.ID, m.LegacyID)
	}
}

func TestClient_UnauthorizedClearsSessionAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"statusCode":401,"message":"Token expired","error":"Unauthorized"}`)
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	if err := store.Save("stale-token", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	client := newClient(t, srv, store)

	var notified bool
	client.OnUnauthorized = func() { notified = true }

	_, err := client.Messages.Stats(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !backoffice.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err.Error() != "Token expired" {
		t.Fatalf("message = %q, want the server's own text", err.Error())
	}
	if store.Authenticated() {
		t.Fatal("a 401 must clear the session")
	}
	if !notified {
		t.Fatal("OnUnauthorized was not invoked")
	}
}

func TestClient_ConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newClient(t, srv, nil)
	srv.Close() // nothing is listening anymore

	_, err := client.Settings.Get(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, okCast := err.(*backoffice.APIError)
	if !okCast {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("status = %d, want 0 when no response arrived", apiErr.Status)
	}
	if apiErr.Message != "Connection error. Check your network." {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if apiErr.Unwrap() == nil {
		t.Fatal("transport error should be preserved for logs")
	}
}

func TestClient_LegacyIDNormalization(t *testing.T) {
	// Older records come back with only the Mongo-style key.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/stack/t1":
			ok(w, `{"_id":"t1","name":"Go","category":"backend","level":"advanced"}`)
		case "/api/stack":
			ok(w, `{"technologies":[{"_id":"t1","name":"Go"},{"id":"t2","name":"Postgres"},{"id":"old","_id":"canonical","name":"Redis"}],"pagination":{"page":1,"pageSize":10,"totalPages":1,"totalItems":3}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newClient(t, srv, nil)
	ctx := context.Background()

	tech, err := client.Stack.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tech.ID != "t1" || tech.LegacyID != "t1" {
		t.Fatalf("ids not normalized: id=%q _id=%q", tech.ID, tech.LegacyID)
	}

	techs, pagination, err := client.Stack.ListPage(ctx, backoffice.TechnologyListParams{})
	if err != nil {
		t.Fatalf("ListPage failed: %v", err)
	}
	if len(techs) != 3 {
		t.Fatalf("got %d technologies, want 3", len(techs))
	}
	for _, tech := range techs {
		if tech.ID == "" || tech.ID != tech.LegacyID {
			t.Fatalf("%s: ids not reconciled: id=%q _id=%q", tech.Name, tech.ID, tech.LegacyID)
		}
	}
	// when both keys disagree the legacy one is canonical
	if techs[2].ID != "canonical" {
		t.Fatalf("id = %q, want the _id value to win", techs[2].ID)
	}
	if pagination.TotalItems != 3 {
		t.Fatalf("pagination.TotalItems = %d, want 3", pagination.TotalItems)
	}
}

func TestClient_ListQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		ok(w, `{"messages":[],"pagination":{"page":2,"pageSize":5,"totalPages":0,"totalItems":0}}`)
	}))
	defer srv.Close()

	client := newClient(t, srv, nil)
	_, _, err := client.Messages.ListPage(context.Background(), backoffice.MessageListParams{
		Page: 2, PageSize: 5, Status: "new", Search: "ana",
	})
	if err != nil {
		t.Fatalf("ListPage failed: %v", err)
	}
	want := "page=2&pageSize=5&search=ana&status=new"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}
}
