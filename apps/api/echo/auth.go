package echoapi

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/trezcool/elimu/core"
)

var (
	contextTokenKey = "userToken"
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
)

// Claims represents the authorization claims of a JWT issued by the auth provider.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
}

type authenticator struct {
	conf core.AuthConfig
	jwt  middleware.JWTConfig
}

func newAuthenticator(conf core.AuthConfig) *authenticator {
	return &authenticator{
		conf: conf,
		jwt: middleware.JWTConfig{
			SigningKey:    []byte(conf.JWTSecret),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

func (a *authenticator) enabled() bool { return a.conf.JWTSecret != "" }

// required rejects requests without a valid token. It lets everything through when auth is disabled.
func (a *authenticator) required() echo.MiddlewareFunc {
	if !a.enabled() {
		return passThrough
	}
	return chain(middleware.JWTWithConfig(a.jwt), a.checkAudience)
}

// optional only checks tokens that are present.
func (a *authenticator) optional() echo.MiddlewareFunc {
	if !a.enabled() {
		return passThrough
	}
	conf := a.jwt
	conf.Skipper = func(ctx echo.Context) bool {
		return ctx.Request().Header.Get(echo.HeaderAuthorization) == ""
	}
	return chain(middleware.JWTWithConfig(conf), a.checkAudience)
}

func (a *authenticator) checkAudience(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if a.conf.Audience != "" {
			if claims, err := getContextClaims(ctx); err == nil && !claims.VerifyAudience(a.conf.Audience, true) {
				return errUnauthorized
			}
		}
		return next(ctx)
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func chain(mws ...echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// requester identifies the caller; anonymous without a token.
func requester(ctx echo.Context) core.Requester {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return core.Requester{}
	}
	return core.Requester{ID: claims.Subject, Email: claims.Email}
}

// GenerateToken signs claims the way the auth provider does. Used by tests and the admin CLI.
func GenerateToken(claims *Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	return token.SignedString([]byte(secret))
}
