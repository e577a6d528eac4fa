package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crease/pkg/token"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		id, err := GetUserIDFromContext(c)
		if err != nil {
			t.Errorf("GetUserIDFromContext: %v", err)
		}
		role, _ := GetRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	good, err := token.GenerateJWT(3, token.RoleScorer, secret, 5)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + good, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + good, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.POST("/balls", RateLimitMiddleware(4, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/balls", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Burst is half the per-minute allowance.
	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1"); code != http.StatusNoContent {
			t.Fatalf("request %d: status %d", i, code)
		}
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("over the limit: status %d", code)
	}
	if code := send("10.0.0.2"); code != http.StatusNoContent {
		t.Errorf("other client limited: status %d", code)
	}
}

func TestIPLimiterDropsIdleClients(t *testing.T) {
	l := newIPLimiter(4, time.Minute)
	clock := time.Now()
	l.now = func() time.Time { return clock }
	l.lastSweep = clock

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.get(ip)
	}
	clock = clock.Add(30 * time.Second)
	l.get("10.0.0.1")

	clock = clock.Add(45 * time.Second)
	l.get("10.0.0.4")
	if len(l.visitors) != 2 {
		t.Fatalf("visitors = %d, want 2 (recently active 10.0.0.1 and new 10.0.0.4)", len(l.visitors))
	}
	if _, ok := l.visitors["10.0.0.1"]; !ok {
		t.Error("active client was dropped")
	}
}
