package security

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"portfolio/internal/config"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 5)

	ip1 := "192.168.1.1"
	limiter1 := limiter.GetLimiter(ip1)
	limiter2 := limiter.GetLimiter(ip1)

	if limiter1 != limiter2 {
		t.Error("Expected same limiter for same IP")
	}

	limiter3 := limiter.GetLimiter("192.168.1.2")
	if limiter1 == limiter3 {
		t.Error("Expected different limiters for different IPs")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 5)
	limiter.GetLimiter("192.168.1.1")
	limiter.GetLimiter("192.168.1.2")

	if removed := limiter.Cleanup(time.Hour); removed != 0 {
		t.Errorf("Expected recently seen clients to stay, removed %d", removed)
	}

	time.Sleep(5 * time.Millisecond)
	if removed := limiter.Cleanup(time.Millisecond); removed != 2 {
		t.Errorf("Expected idle clients to be removed, removed %d", removed)
	}
	if limiter.Len() != 0 {
		t.Errorf("Expected no tracked clients, got %d", limiter.Len())
	}
}

func TestSetupSecurityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	if limiter := SetupSecurityMiddleware(router, testSecurityConfig()); limiter == nil {
		t.Error("Expected a rate limiter when rate limiting is enabled")
	}
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if csp := w.Header().Get("Content-Security-Policy"); !strings.HasPrefix(csp, "default-src 'self'") {
		t.Errorf("Expected content security policy, got %q", csp)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a request id header")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Errorf("Expected frame deny, got %q", w.Header().Get("X-Frame-Options"))
	}

	disabled := config.SecurityConfig{MaxRequestSize: 1024}
	router2 := gin.New()
	if limiter := SetupSecurityMiddleware(router2, disabled); limiter != nil {
		t.Error("Expected no rate limiter when rate limiting is disabled")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	limiter := NewRateLimiter(rate.Limit(1), 2)
	router.Use(RateLimitMiddleware(limiter))

	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1")
		router.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst to be allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after the burst, got %d", codes[2])
	}

	// Another client has its own bucket
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.2")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for another client, got %d", w.Code)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(RequestSizeMiddleware(100)) // 100 bytes limit

	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tests := []struct {
		name          string
		contentLength int64
		want          int
	}{
		{name: "Within limit", contentLength: 50, want: http.StatusOK},
		{name: "Exceeds limit", contentLength: 150, want: http.StatusRequestEntityTooLarge},
		{name: "No content length", contentLength: 0, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/test", nil)
			req.ContentLength = tt.contentLength
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestInputValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(InputValidationMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "No parameters", query: "", want: http.StatusOK},
		{name: "Valid filters", query: "?category=Infra&year=2024&q=monitor&page=2", want: http.StatusOK},
		{name: "All year", query: "?year=all", want: http.StatusOK},
		{name: "Valid limit", query: "?limit=10", want: http.StatusOK},
		{name: "Page not a number", query: "?page=abc", want: http.StatusBadRequest},
		{name: "Negative page", query: "?page=-1", want: http.StatusBadRequest},
		{name: "Huge page", query: "?page=99999999999999999999", want: http.StatusBadRequest},
		{name: "Bad year", query: "?year=24", want: http.StatusBadRequest},
		{name: "Limit not a number", query: "?limit=ten", want: http.StatusBadRequest},
		{name: "Keyword too long", query: "?q=" + strings.Repeat("a", 201), want: http.StatusBadRequest},
		{name: "Keyword at limit", query: "?q=" + strings.Repeat("a", 200), want: http.StatusOK},
		{name: "Category too long", query: "?category=" + strings.Repeat("c", 101), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/"+tt.query, nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestSecurityLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf strings.Builder
	gin.DefaultWriter = &buf
	defer func() { gin.DefaultWriter = os.Stdout }()

	router := gin.New()
	router.Use(SecurityLoggingMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "unavailable"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("User-Agent", "TestBot/1.0")
	router.ServeHTTP(w, req)

	line := buf.String()
	for _, want := range []string{"method=GET", "path=/test", "status=200", "user_agent=TestBot/1.0"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected log line to contain %q, got %q", want, line)
		}
	}
	if strings.Contains(line, "error=true") {
		t.Error("Successful requests must not be flagged as errors")
	}

	buf.Reset()
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/fail", nil)
	router.ServeHTTP(w, req)
	if !strings.Contains(buf.String(), "error=true") {
		t.Errorf("Expected failed request to be flagged, got %q", buf.String())
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, getClientIP(c))
	})

	tests := []struct {
		name       string
		header     string
		value      string
		remoteAddr string
		want       string
	}{
		{name: "Forwarded list", header: "X-Forwarded-For", value: "192.168.1.1, 10.0.0.1", want: "192.168.1.1"},
		{name: "Real IP", header: "X-Real-IP", value: "192.168.1.2", want: "192.168.1.2"},
		{name: "Remote address", remoteAddr: "192.168.1.4:12345", want: "192.168.1.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}
			router.ServeHTTP(w, req)

			if w.Body.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, w.Body.String())
			}
		})
	}
}

func TestValidationFunctions(t *testing.T) {
	numbers := map[string]bool{"123": true, "0": true, "abc": false, "": false, "-123": false, "12.34": false}
	for s, want := range numbers {
		if got := isValidNumber(s); got != want {
			t.Errorf("isValidNumber(%q) = %v, want %v", s, got, want)
		}
	}

	years := map[string]bool{"2024": true, "all": true, "24": false, "20245": false, "ALL": false, "abcd": false}
	for s, want := range years {
		if got := isValidYear(s); got != want {
			t.Errorf("isValidYear(%q) = %v, want %v", s, got, want)
		}
	}
}

func testSecurityConfig() config.SecurityConfig {
	return config.SecurityConfig{
		EnableRateLimit:       true,
		RateLimitPerSecond:    10.0,
		RateLimitBurst:        20,
		EnableCORS:            true,
		AllowedOrigins:        []string{"*"},
		EnableSecurityHeaders: true,
		MaxRequestSize:        1 << 20,
		EnableRequestID:       true,
	}
}
