package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type answerFunc func(ctx context.Context, query string) (string, error)

func (f answerFunc) Answer(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

func doSearch(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch_OK(t *testing.T) {
	s := NewServer(":0", answerFunc(func(_ context.Context, q string) (string, error) {
		if q != "IPL match today" {
			t.Errorf("query = %q", q)
		}
		return "the summary", nil
	}))

	rec := doSearch(t, s, "/search?q=IPL+match+today")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Query != "IPL match today" || resp.Results != "the summary" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestHandleSearch_ShortQueryRejected(t *testing.T) {
	s := NewServer(":0", answerFunc(func(context.Context, string) (string, error) {
		t.Error("answerer called for invalid query")
		return "", nil
	}))

	for _, target := range []string{"/search", "/search?q=", "/search?q=a", "/search?q=+x+"} {
		rec := doSearch(t, s, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: decode: %v", target, err)
		} else if resp.Error == "" {
			t.Errorf("%s: empty error message", target)
		}
	}
}

func TestHandleSearch_InternalError(t *testing.T) {
	s := NewServer(":0", answerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("pipeline exploded")
	}))
	rec := doSearch(t, s, "/search?q=anything")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestHandleSearch_MethodNotAllowed(t *testing.T) {
	s := NewServer(":0", answerFunc(func(context.Context, string) (string, error) {
		return "x", nil
	}))
	req := httptest.NewRequest(http.MethodPost, "/search?q=hello", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
