package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/contactform"
	"github.com/dalemusser/portfolio/internal/app/system/routeguard"
	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
)

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func getPage(t *testing.T, h http.Handler, path string, cookies []*http.Cookie) string {
	t.Helper()
	rec := serve(h, withCookies(httptest.NewRequest(http.MethodGet, path, nil), cookies))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: got %d, body %s", path, rec.Code, rec.Body.String())
	}
	return rec.Body.String()
}

func TestRouter_ContactFormRendersSubmittingThenSent(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var enterOnce, releaseOnce sync.Once
	unblock := func() { releaseOnce.Do(func() { close(release) }) }

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enterOnce.Do(func() { close(entered) })
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Email sent successfully!"}`))
	}))
	// Cleanups run last-in first-out: unblock the handler, then close.
	t.Cleanup(relay.Close)
	t.Cleanup(unblock)

	r, _ := newTestRouterWith(t, testRouterOpts{csrf: passthrough, relayURL: relay.URL})
	cookies := serve(r, httptest.NewRequest(http.MethodGet, "/contact/state", nil)).Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no visitor cookie issued")
	}

	idle := getPage(t, r, "/", cookies)
	if !strings.Contains(idle, ">Send Message</button>") || strings.Contains(idle, "Sending...") {
		t.Fatalf("idle form not rendered:\n%s", idle)
	}

	form := url.Values{"email": {"test@example.com"}, "message": {"Hello there"}, "return": {"/"}}
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		done <- serve(r, withCookies(req, cookies))
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("relay was never called")
	}

	sending := getPage(t, r, "/", cookies)
	for _, want := range []string{
		`class="button" disabled>Sending...</button>`,
		`value="test@example.com" disabled>`,
		`>Hello there</textarea>`,
	} {
		if !strings.Contains(sending, want) {
			t.Errorf("submitting page missing %q", want)
		}
	}

	unblock()
	select {
	case rec := <-done:
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("post status: got %d, want 303", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/#contact" {
			t.Errorf("Location: got %q", loc)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("post did not finish after the relay answered")
	}

	sent := getPage(t, r, "/", cookies)
	for _, want := range []string{contactform.MsgSent, `action="/contact/reset"`, "Send another message"} {
		if !strings.Contains(sent, want) {
			t.Errorf("sent page missing %q", want)
		}
	}
	if strings.Contains(sent, "Sending...") || strings.Contains(sent, `name="email"`) {
		t.Error("sent page still shows the input form")
	}

	// Another visitor is unaffected.
	if other := getPage(t, r, "/", nil); !strings.Contains(other, ">Send Message</button>") {
		t.Error("fresh visitor should see an idle form")
	}
}

func TestNewExportHandler_StaticContactForm(t *testing.T) {
	site, posts, _, err := LoadContent("", "")
	if err != nil {
		t.Fatalf("LoadContent() error: %v", err)
	}
	view := &viewdata.Env{
		Site:   site,
		Routes: routeguard.NewConfig(site.Routes, site.DynamicRoutes),
		Static: true,
		Relay: viewdata.RelayTarget{
			URL:       "https://api.web3forms.com/submit",
			AccessKey: "test-access-key",
			FromName:  "Portfolio Site",
		},
	}
	h := NewExportHandler(view, posts, testLogger())

	for _, path := range []string{"/", "/about", "/blog"} {
		t.Run(path, func(t *testing.T) {
			body := getPage(t, h, path, nil)
			for _, want := range []string{
				`action="https://api.web3forms.com/submit"`,
				`name="access_key" value="test-access-key"`,
				`name="from_name" value="Portfolio Site"`,
				`name="subject" value="New Contact Form Message"`,
				">Send Message</button>",
			} {
				if !strings.Contains(body, want) {
					t.Errorf("missing %q", want)
				}
			}
			for _, unwanted := range []string{`name="csrf_token"`, `name="return"`, "/contact/reset"} {
				if strings.Contains(body, unwanted) {
					t.Errorf("static page carries server-only field %q", unwanted)
				}
			}
		})
	}
}
