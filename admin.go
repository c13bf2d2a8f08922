// admin.go - Privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// visitorRetentionCutoff is the point before which the privacy cleanup
// removes visitor rows: 12 calendar months before now.
func visitorRetentionCutoff(now time.Time) time.Time {
	return now.AddDate(-1, 0, 0)
}

type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // hashed, never the raw IP
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type AssetStat struct {
	Asset    string `json:"asset"`
	Served   int64  `json:"served"`
	NotFound int64  `json:"not_found"`
}

type DailyCount struct {
	Day    time.Time `json:"day"`
	Visits int64     `json:"visits"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalDownloads   int64           `json:"total_downloads"`
	FailedDownloads  int64           `json:"failed_downloads"`
	Assets           []AssetStat     `json:"assets"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
	DailyVisits      []DailyCount    `json:"daily_visits"`
}

// adminAuth holds the per-process admin session token and the salt used to
// hash visitor IPs.
type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

func newAdminAuth(username, password string) (*adminAuth, error) {
	token, err := generateAdminToken()
	if err != nil {
		return nil, err
	}
	salt, err := generateAdminToken()
	if err != nil {
		return nil, err
	}

	if username == "" {
		username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if password == "" {
		password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", token)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")

	return &adminAuth{token: token, salt: salt, username: username, password: password}, nil
}

func generateAdminToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP is stable for a given IP within one process lifetime.
func (a *adminAuth) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + a.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPrefixes are never recorded as visits.
var untrackedPrefixes = []string{"/static/", "/images/", "/assets/", "/charts/", "/admin/", "/favicon", "/privacy", "/healthz"}

func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// Respect Do Not Track
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed := s.auth.hashIP(c.ClientIP())
		if err := s.stats.recordVisit(hashed, c.GetHeader("User-Agent"), path, s.now()); err != nil {
			log.Printf("Error recording visitor: %v", err)
		}
		c.Next()
	}
}

func (s *server) cleanupOldVisitorData() {
	removed, err := s.stats.deleteVisitorsBefore(visitorRetentionCutoff(s.now()))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", removed)
	}
}

func (s *server) getAdminStats() (*AdminStats, error) {
	stats := &AdminStats{}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if stats.TotalVisitors, stats.UniqueVisitors, err = s.stats.visitorTotals(); err != nil {
		return nil, err
	}
	if stats.VisitorsToday, err = s.stats.countVisitorsSince(today); err != nil {
		return nil, err
	}
	if stats.VisitorsThisWeek, err = s.stats.countVisitorsSince(now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if stats.TotalDownloads, stats.FailedDownloads, err = s.stats.downloadTotals(); err != nil {
		return nil, err
	}
	if stats.Assets, err = s.stats.assetStats(); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.stats.recentVisitors(50); err != nil {
		return nil, err
	}
	if stats.DailyVisits, err = s.stats.dailyVisits(14, now); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if !s.auth.checkCredentials(username, password) {
			log.Printf("Failed admin login attempt from %s", s.auth.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetCookie("admin_token", s.auth.token, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.auth.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.auth.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.getAdminStats()
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/charts/visits.png", func(c *gin.Context) {
		days, err := s.stats.dailyVisits(14, s.now())
		if err != nil {
			log.Printf("Error loading daily visits: %v", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		img, err := renderVisitsChart(days)
		if err != nil {
			log.Printf("Error rendering visits chart: %v", err)
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "image/png", img)
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		s.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.getAdminStats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
