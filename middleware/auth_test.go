package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/models"
	"business-directory-api/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func withConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = config.Defaults()
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestTokenPairTypes(t *testing.T) {
	withConfig(t)
	u := &models.User{ID: 4, Username: "ada", IsBusinessOwner: true}
	accessTok, refreshTok, err := GenerateTokenPair(u)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(accessTok, AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != 4 || claims.Username != "ada" || !claims.IsBusinessOwner || claims.ID == "" {
		t.Errorf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Errorf("access lifetime = %v", got)
	}

	if _, err := ParseToken(refreshTok, RefreshToken); err != nil {
		t.Errorf("parse refresh: %v", err)
	}
	if _, err := ParseToken(accessTok, RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access used as refresh: %v", err)
	}
	if _, err := ParseToken(refreshTok, AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh used as access: %v", err)
	}
}

func TestParseTokenRejects(t *testing.T) {
	withConfig(t)
	sign := func(method jwt.SigningMethod, key any, claims Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	valid := Claims{UserID: 1, TokenType: AccessToken, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noUser := valid
	noUser.UserID = 0

	cases := map[string]string{
		"garbage":      "abc.def.ghi",
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), valid),
		"wrong method": sign(jwt.SigningMethodHS512, config.AppConfig.JWTSecret, valid),
		"expired":      sign(jwt.SigningMethodHS256, config.AppConfig.JWTSecret, expired),
		"no user":      sign(jwt.SigningMethodHS256, config.AppConfig.JWTSecret, noUser),
	}
	for name, tok := range cases {
		if _, err := ParseToken(tok, AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestAuthenticateSetsCaller(t *testing.T) {
	withConfig(t)
	gin.SetMode(gin.TestMode)
	config.DB = testutil.NewDB(t)
	u := &models.User{Username: "bea", Location: "Here", IsBusinessOwner: true, IsActive: true}
	if err := config.DB.Create(u).Error; err != nil {
		t.Fatal(err)
	}
	tok, _, err := GenerateTokenPair(u)
	if err != nil {
		t.Fatal(err)
	}

	var seen access.Caller
	r := gin.New()
	r.GET("/who", Authenticate(), func(c *gin.Context) {
		seen = GetCaller(c)
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		status int
		want   access.Caller
	}{
		{"anonymous", "", http.StatusOK, access.Caller{}},
		{"bearer", "Bearer " + tok, http.StatusOK, access.Caller{UserID: u.ID, Username: "bea", IsBusinessOwner: true}},
		{"wrong scheme", "Token " + tok, http.StatusUnauthorized, access.Caller{}},
		{"bad token", "Bearer nope", http.StatusUnauthorized, access.Caller{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = access.Caller{}
			req := httptest.NewRequest(http.MethodGet, "/who", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if seen != tc.want {
				t.Errorf("caller = %+v, want %+v", seen, tc.want)
			}
		})
	}
}

func TestAuthorizeStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		caller access.Caller
		status int
	}{
		{"anonymous", access.Caller{}, http.StatusUnauthorized},
		{"no owner flag", access.Caller{UserID: 1}, http.StatusForbidden},
		{"owner", access.Caller{UserID: 1, IsBusinessOwner: true}, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/b", func(c *gin.Context) {
				if tc.caller.Authenticated() {
					c.Set(callerKey, tc.caller)
				}
			}, Authorize(access.Businesses, access.Create), func(c *gin.Context) {
				c.Status(http.StatusNoContent)
			})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/b", nil))
			if w.Code != tc.status {
				t.Errorf("status = %d, want %d", w.Code, tc.status)
			}
		})
	}
}
