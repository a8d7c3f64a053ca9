package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"focustime/pkg/auth"
)

func limiterRouter(t *testing.T, rl *RateLimiter) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/project", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func getWithCookie(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/project", nil)
	req.RemoteAddr = "10.0.0.1:4000"

	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

// Authenticated requests are limited per user even though the limiter runs
// before the auth middleware: two users behind one IP must not share a
// window.
func TestUserKeyedLimitFromSessionCookie(t *testing.T) {
	RegisterTestingT(t)

	tokens := &auth.JWT{Secret: "test-secret"}
	rl := NewRateLimiter(zap.NewNop(), nil, tokens)
	rl.SetConfig("GET /project", EndpointConfig{Requests: 1, Window: time.Minute, KeyFunc: rl.userKey})

	router := limiterRouter(t, rl)

	aliceToken, err := tokens.CreateToken("user-alice")
	Expect(err).ToNot(HaveOccurred())

	bobToken, err := tokens.CreateToken("user-bob")
	Expect(err).ToNot(HaveOccurred())

	Expect(getWithCookie(router, aliceToken).Code).To(Equal(http.StatusOK))
	Expect(getWithCookie(router, aliceToken).Code).To(Equal(http.StatusTooManyRequests))

	// A different user from the same address still has a fresh window.
	Expect(getWithCookie(router, bobToken).Code).To(Equal(http.StatusOK))
}

func TestUnauthenticatedRequestsFallBackToIPKey(t *testing.T) {
	RegisterTestingT(t)

	tokens := &auth.JWT{Secret: "test-secret"}
	rl := NewRateLimiter(zap.NewNop(), nil, tokens)
	rl.SetConfig("GET /project", EndpointConfig{Requests: 1, Window: time.Minute, KeyFunc: rl.userKey})

	router := limiterRouter(t, rl)

	Expect(getWithCookie(router, "").Code).To(Equal(http.StatusOK))
	Expect(getWithCookie(router, "").Code).To(Equal(http.StatusTooManyRequests))
}

func TestInvalidTokenFallsBackToIPKey(t *testing.T) {
	RegisterTestingT(t)

	tokens := &auth.JWT{Secret: "test-secret"}
	rl := NewRateLimiter(zap.NewNop(), nil, tokens)

	req, _ := http.NewRequest("GET", "/project", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "not-a-token"})

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	c.Request = req

	Expect(rl.userKey(c)).ToNot(HavePrefix("user_"))
}
