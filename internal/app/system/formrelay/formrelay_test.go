package formrelay_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"github.com/google/go-cmp/cmp"
)

func TestSend_PostsExpectedBody(t *testing.T) {
	var got map[string]string
	var contentType, method string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	defer srv.Close()

	c := formrelay.New(srv.URL, "key-123", "", srv.Client())
	err := c.Send(context.Background(), formrelay.Submission{Email: "test@example.com", Message: "Hello"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	if method != http.MethodPost {
		t.Errorf("method: got %s, want POST", method)
	}
	if contentType != "application/json" {
		t.Errorf("content type: got %q", contentType)
	}

	want := map[string]string{
		"access_key": "key-123",
		"from_name":  "Portfolio Contact Form",
		"replyto":    "test@example.com",
		"email":      "test@example.com",
		"message":    "Hello",
		"subject":    "New Contact Form Message from test@example.com",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestSend_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		rejected bool
	}{
		{"success false", http.StatusOK, `{"success":false,"message":"invalid access key"}`, true},
		{"success false on 400", http.StatusBadRequest, `{"success":false}`, true},
		{"missing success", http.StatusOK, `{"message":"ok"}`, false},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, false},
		{"empty body", http.StatusOK, ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := formrelay.New(srv.URL, "k", "", srv.Client())
			err := c.Send(context.Background(), formrelay.Submission{Email: "a@b.co", Message: "m"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, formrelay.ErrRejected); got != tt.rejected {
				t.Errorf("errors.Is(ErrRejected) = %v, want %v (err: %v)", got, tt.rejected, err)
			}
		})
	}
}

func TestSend_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := formrelay.New(url, "k", "", nil)
	if err := c.Send(context.Background(), formrelay.Submission{Email: "a@b.co", Message: "m"}); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestSend_RespectsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := formrelay.New(srv.URL, "k", "", srv.Client())
	err := c.Send(ctx, formrelay.Submission{Email: "a@b.co", Message: "m"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := formrelay.New("", "k", "", nil)
	if c.URL() != formrelay.DefaultURL {
		t.Errorf("URL: got %q", c.URL())
	}
	if c.FromName() != formrelay.DefaultFromName {
		t.Errorf("FromName: got %q", c.FromName())
	}
}
