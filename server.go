// server.go - Portfolio routes: page, assets, charts
package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/chart"
	"github.com/Zachkp/portfolio/content"
)

type server struct {
	cfg      *Config
	resolver *content.Resolver
	stats    *statsStore
	auth     *adminAuth
	now      func() time.Time
}

func newServer(cfg *Config, stats *statsStore, resolver *content.Resolver) (*server, error) {
	auth, err := newAdminAuth(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	return &server{
		cfg:      cfg,
		resolver: resolver,
		stats:    stats,
		auth:     auth,
		now:      time.Now,
	}, nil
}

func (s *server) router(templatesGlob string) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(templatesGlob)
	r.Use(requestIDMiddleware())
	r.Use(s.visitorTrackingMiddleware())

	r.Static("/static", "./static")

	r.GET("/", s.handleIndex)
	r.GET("/assets/:name", s.handleAsset)
	r.GET("/charts/certifications.png", s.handleCertificationsChart)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.setupAdminRoutes(r)
	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

type projectView struct {
	Title     string
	Body      template.HTML
	Media     []assetView
	Downloads []assetView
}

// assetView is an asset as the page shows it. Missing holds the fallback
// message when the asset could not be loaded.
type assetView struct {
	Name    string
	Label   string
	Kind    string
	MIME    string
	URL     string
	Missing string
}

func missingMessage(a *AssetConfig) string {
	return fmt.Sprintf("%s file '%s' not found.", a.Label, a.Source)
}

// resolveAsset loads an asset; images must also decode.
func (s *server) resolveAsset(ctx context.Context, a *AssetConfig) content.Content {
	if a.Kind == KindImage {
		return s.resolver.ResolveImage(ctx, a.Ref)
	}
	return s.resolver.Resolve(ctx, a.Ref)
}

func (s *server) lookupAsset(ctx context.Context, name string) (assetView, bool) {
	a, ok := s.cfg.Assets[name]
	if !ok {
		return assetView{}, false
	}
	v := assetView{Name: name, Label: a.Label, Kind: a.Kind, MIME: a.MIME, URL: "/assets/" + name}
	if s.resolveAsset(ctx, a).IsAbsent() {
		v.Missing = missingMessage(a)
	}
	return v, true
}

func (s *server) assetViews(ctx context.Context, names []string) []assetView {
	var out []assetView
	for _, name := range names {
		if v, ok := s.lookupAsset(ctx, name); ok {
			out = append(out, v)
		}
	}
	return out
}

// selectedPersona falls back to the configured default for unknown keys.
func (s *server) selectedPersona(key string) persona {
	if p, ok := personaByKey(key); ok {
		return p
	}
	p, _ := personaByKey(s.cfg.Chart.DefaultPersona)
	return p
}

func (s *server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	selected := s.selectedPersona(c.Query("persona"))

	projects := make([]projectView, 0, len(Projects))
	for _, p := range Projects {
		projects = append(projects, projectView{
			Title:     p.Title,
			Body:      renderMarkdown(p.Markdown),
			Media:     s.assetViews(ctx, p.Media),
			Downloads: s.assetViews(ctx, p.Downloads),
		})
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":        HeroName,
		"heroName":     HeroName,
		"heroTagline":  HeroTagline,
		"aboutMe":      renderMarkdown(AboutMe),
		"personas":     Personas,
		"persona":      selected,
		"resume":       s.assetViews(ctx, s.cfg.assetNames(KindDownload)),
		"audio":        s.assetViews(ctx, s.cfg.assetNames(KindAudio)),
		"images":       s.assetViews(ctx, s.cfg.assetNames(KindImage)),
		"projects":     projects,
		"testimonials": Testimonials,
		"links":        ToolLinks,
	})
}

// handleAsset serves a configured asset, or the fallback message when it
// cannot be loaded.
func (s *server) handleAsset(c *gin.Context) {
	name := c.Param("name")
	asset, ok := s.cfg.Assets[name]
	if !ok {
		c.HTML(http.StatusNotFound, "asset-missing.html", gin.H{
			"title":   "Not found",
			"message": fmt.Sprintf("Unknown asset '%s'.", name),
		})
		return
	}

	data, found := s.resolveAsset(c.Request.Context(), asset).Bytes()

	if err := s.stats.recordDownload(name, found, s.now()); err != nil {
		log.Printf("Error recording download of %s: %v", name, err)
	}

	if !found {
		c.HTML(http.StatusNotFound, "asset-missing.html", gin.H{
			"title":   "Not found",
			"message": missingMessage(asset),
		})
		return
	}

	if asset.Kind == KindDownload {
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": asset.FileName}))
	}
	c.Data(http.StatusOK, asset.MIME, data)
}

func (s *server) handleCertificationsChart(c *gin.Context) {
	p := s.selectedPersona(c.Query("persona"))

	img, err := chart.RenderBarChart(p.Certifications, s.cfg.Chart.XLabel, s.cfg.Chart.YLabel)
	if err != nil {
		log.Printf("Error rendering chart for %s: %v", p.Key, err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}
