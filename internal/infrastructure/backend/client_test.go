package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
)

type stubStore struct {
	token   string
	user    *domain.User
	cleared int
}

func (s *stubStore) Token(context.Context) string             { return s.token }
func (s *stubStore) CurrentUser(context.Context) *domain.User { return s.user }
func (s *stubStore) ClearInvalidData(context.Context) error   { return nil }
func (s *stubStore) SetSession(_ context.Context, token string, user *domain.User) error {
	s.token, s.user = token, user
	return nil
}
func (s *stubStore) ClearSession(context.Context) error {
	s.token, s.user = "", nil
	s.cleared++
	return nil
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := &stubStore{token: "tok-123"}
	client := NewClient(srv.URL, store, zerolog.Nop())

	if err := client.get(context.Background(), "/Courses", nil, &struct{}{}); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}

	store.token = ""
	if err := client.get(context.Background(), "/Courses", nil, &struct{}{}); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header without token, got %q", gotAuth)
	}
}

func TestClient_UnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := &stubStore{token: "stale", user: &domain.User{ID: 1}}
	client := NewClient(srv.URL, store, zerolog.Nop())
	hookFired := false
	client.OnSessionInvalid(func() { hookFired = true })

	err := client.get(context.Background(), "/Cart/1", nil, &struct{}{})
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.token != "" || store.user != nil {
		t.Fatalf("expected session wiped, got token=%q user=%+v", store.token, store.user)
	}
	if store.cleared != 1 {
		t.Fatalf("expected one ClearSession call, got %d", store.cleared)
	}
	if !hookFired {
		t.Fatalf("expected invalidation hook to fire")
	}
}

func TestClient_OtherErrorsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"cannot update a purchased course"}`))
	}))
	defer srv.Close()

	store := &stubStore{token: "tok"}
	client := NewClient(srv.URL, store, zerolog.Nop())

	err := client.put(context.Background(), "/Courses/42", struct{}{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if apiErr.Message != "cannot update a purchased course" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
	if store.cleared != 0 {
		t.Fatalf("non-401 must not clear the session")
	}
}

func TestCourseService_UpdatePurchasedCourse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Cannot update a purchased course"}`))
	}))
	defer srv.Close()

	courses := NewCourseService(NewClient(srv.URL, &stubStore{}, zerolog.Nop()))
	_, err := courses.Update(context.Background(), 42, domain.CreateCourse{Title: "Go"})
	if !errors.Is(err, domain.ErrCoursePurchased) {
		t.Fatalf("expected ErrCoursePurchased, got %v", err)
	}
}

func TestCourseService_ListQuerySerialization(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"Items":[],"TotalCount":0,"Page":1,"PageSize":10}`))
	}))
	defer srv.Close()

	courses := NewCourseService(NewClient(srv.URL, &stubStore{}, zerolog.Nop()))

	_, err := courses.List(context.Background(), domain.CourseFilters{
		Search:    "go",
		MinRating: 4.5,
		Page:      2,
		PageSize:  12,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := "minRating=4.5&page=2&pageSize=12&search=go"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}

	// Defaults are omitted entirely, not sent as empty values.
	if _, err := courses.List(context.Background(), domain.CourseFilters{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected empty query for zero filters, got %q", gotQuery)
	}
}

func TestAuthService_LoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"Token":"tok-1","UserId":9,"FirstName":"Ada","LastName":"Lovelace","Email":"ada@example.com","Role":"Admin"}`))
	}))
	defer srv.Close()

	store := &stubStore{}
	auth := NewAuthService(NewClient(srv.URL, store, zerolog.Nop()), store, zerolog.Nop())

	resp, err := auth.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token != "tok-1" || resp.UserID != 9 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if store.token != "tok-1" {
		t.Fatalf("token not persisted, got %q", store.token)
	}
	if store.user == nil || store.user.ID != 9 || !store.user.IsAdmin() {
		t.Fatalf("user not persisted: %+v", store.user)
	}
}

func TestAuthService_LoginRejectsTokenlessResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"UserId":9}`))
	}))
	defer srv.Close()

	store := &stubStore{}
	auth := NewAuthService(NewClient(srv.URL, store, zerolog.Nop()), store, zerolog.Nop())

	if _, err := auth.Login(context.Background(), domain.LoginRequest{Email: "a@b.c", Password: "pw"}); err == nil {
		t.Fatalf("expected error for tokenless response")
	}
	if store.token != "" || store.user != nil {
		t.Fatalf("nothing may be stored on failure, got token=%q user=%+v", store.token, store.user)
	}
}
