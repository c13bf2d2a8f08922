package main

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/content"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// testConfig points every default asset at a file in a temp dir. Only the
// names listed in present are created.
func testConfig(t *testing.T, present ...string) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := defaultConfig()
	for name, a := range cfg.Assets {
		a.Source = filepath.Join(dir, name+".bin")
	}
	for _, name := range present {
		data := []byte(name + " payload")
		if cfg.Assets[name].Kind == KindImage {
			var buf bytes.Buffer
			if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
				t.Fatal(err)
			}
			data = buf.Bytes()
		}
		if err := os.WriteFile(cfg.Assets[name].Source, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg.AdminUsername = "owner"
	cfg.AdminPassword = "s3cret"
	if err := cfg.resolveAssets(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestServer(t *testing.T, cfg *Config) (*server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stats, err := openStatsStore(":memory:")
	if err != nil {
		t.Fatalf("openStatsStore: %v", err)
	}
	t.Cleanup(func() { _ = stats.Close() })

	resolver := content.NewResolver(content.WithLogger(log.New(io.Discard, "", 0)))
	srv, err := newServer(cfg, stats, resolver)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	srv.now = func() time.Time { return fixedNow }
	return srv, srv.router("templates/*")
}

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	return doRequest(r, httptest.NewRequest(http.MethodGet, path, nil))
}

func TestAssetDownload(t *testing.T) {
	_, r := newTestServer(t, testConfig(t, "resume"))

	w := get(r, "/assets/resume")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "resume payload" {
		t.Errorf("body = %q", w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=Resume.pdf" {
		t.Errorf("Content-Disposition = %q", got)
	}
}

func TestAssetDownloadNonASCIIFileName(t *testing.T) {
	cfg := testConfig(t, "resume")
	cfg.Assets["resume"].FileName = "Résumé 2026.pdf"
	_, r := newTestServer(t, cfg)

	w := get(r, "/assets/resume")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	want := "attachment; filename*=utf-8''R%C3%A9sum%C3%A9%202026.pdf"
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
}

func TestAssetMissingShowsFallback(t *testing.T) {
	cfg := testConfig(t)
	_, r := newTestServer(t, cfg)

	w := get(r, "/assets/explainer-video")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	want := "Video file &#39;" + cfg.Assets["explainer-video"].Source + "&#39; not found."
	if !strings.Contains(w.Body.String(), want) {
		t.Errorf("body missing fallback %q:\n%s", want, w.Body.String())
	}
}

func TestAssetUnknown(t *testing.T) {
	_, r := newTestServer(t, testConfig(t))

	if w := get(r, "/assets/secrets"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAssetMediaIsInline(t *testing.T) {
	_, r := newTestServer(t, testConfig(t, "intro-audio"))

	w := get(r, "/assets/intro-audio")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != "" {
		t.Errorf("audio should not be an attachment, got %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestAssetRemote(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cv.pdf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote resume"))
	}))
	defer remote.Close()

	cfg := testConfig(t)
	cfg.Assets["resume"].Source = remote.URL + "/cv.pdf"
	cfg.Assets["job-seeker-code"].Source = remote.URL + "/gone.txt"
	if err := cfg.resolveAssets(); err != nil {
		t.Fatal(err)
	}
	_, r := newTestServer(t, cfg)

	if w := get(r, "/assets/resume"); w.Code != http.StatusOK || w.Body.String() != "remote resume" {
		t.Errorf("remote resume: status %d body %q", w.Code, w.Body.String())
	}
	if w := get(r, "/assets/job-seeker-code"); w.Code != http.StatusNotFound {
		t.Errorf("remote 404 should fall back, got %d", w.Code)
	}
}

func TestAssetImageMustDecode(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.Assets["headshot"].Source, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, r := newTestServer(t, cfg)

	if w := get(r, "/assets/headshot"); w.Code != http.StatusNotFound {
		t.Errorf("malformed image: status = %d, want 404", w.Code)
	}

	cfg = testConfig(t, "headshot")
	_, r = newTestServer(t, cfg)
	if w := get(r, "/assets/headshot"); w.Code != http.StatusOK {
		t.Errorf("valid image: status = %d, want 200", w.Code)
	}
}

func TestCertificationsChart(t *testing.T) {
	_, r := newTestServer(t, testConfig(t))

	for _, persona := range []string{"data-analyst", "cloud-engineer", "unknown", ""} {
		w := get(r, "/charts/certifications.png?persona="+persona)
		if w.Code != http.StatusOK {
			t.Fatalf("persona %q: status = %d", persona, w.Code)
		}
		if got := w.Header().Get("Content-Type"); got != "image/png" {
			t.Errorf("persona %q: Content-Type = %q", persona, got)
		}
		cfg, err := png.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
		if err != nil {
			t.Fatalf("persona %q: not a png: %v", persona, err)
		}
		if cfg.Width != 1000 || cfg.Height != 500 {
			t.Errorf("persona %q: size %dx%d", persona, cfg.Width, cfg.Height)
		}
	}
}

func TestIndexPage(t *testing.T) {
	_, r := newTestServer(t, testConfig(t, "resume", "intro-audio", "explainer-video", "job-seeker-code", "headshot"))

	w := get(r, "/?persona=project-manager")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		HeroName,
		"LinkedIn Job Seeker Tool",
		"<li>Avoid ghost jobs and optimize the time spent applying.</li>",
		`<option value="project-manager" selected>`,
		"/charts/certifications.png?persona=project-manager",
		`href="/assets/resume"`,
		`href="/assets/job-seeker-code"`,
		`<video controls src="/assets/explainer-video"`,
		`<audio controls src="/assets/intro-audio"`,
		`<img class="headshot" src="/assets/headshot"`,
		Testimonials[0].Author,
		ToolLinks[0].URL,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Contains(body, "not found.") {
		t.Error("index shows a fallback message although every asset exists")
	}
}

func TestIndexPageMissingAssets(t *testing.T) {
	cfg := testConfig(t, "resume")
	if err := os.WriteFile(cfg.Assets["headshot"].Source, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, r := newTestServer(t, cfg)

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()

	for _, name := range []string{"explainer-video", "job-seeker-code", "intro-audio", "headshot"} {
		a := cfg.Assets[name]
		want := a.Label + " file &#39;" + a.Source + "&#39; not found."
		if !strings.Contains(body, want) {
			t.Errorf("index missing fallback %q", want)
		}
	}
	for _, gone := range []string{
		`<video controls src="/assets/explainer-video"`,
		`<audio controls src="/assets/intro-audio"`,
		`href="/assets/job-seeker-code"`,
		`src="/assets/headshot"`,
	} {
		if strings.Contains(body, gone) {
			t.Errorf("index still links missing asset: %q", gone)
		}
	}
	if !strings.Contains(body, `href="/assets/resume"`) {
		t.Error("present resume should still be offered")
	}
}

func TestHealthzAndRequestID(t *testing.T) {
	_, r := newTestServer(t, testConfig(t))

	w := get(r, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	if got := doRequest(r, req).Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want passthrough", got)
	}
}
