package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mundoacuatico/backend/core"
	"github.com/mundoacuatico/backend/core/staff"
)

const (
	contextTokenKey = "userToken"
	contextUserKey  = "user"
	tokenAudience   = "Administración"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64      `json:"oriat,omitempty"`
	Username     string     `json:"usuario,omitempty"`
	Role         staff.Role `json:"rol,omitempty"`
}

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// optionalJWTConfig loads the token only when the request carries a valid one.
// Requests with a missing, expired or forged token are served as public requests.
func (s *Server) optionalJWTConfig() middleware.JWTConfig {
	cfg := s.jwt
	cfg.Skipper = func(ctx echo.Context) bool {
		return !validToken(cfg, ctx.Request().Header.Get(echo.HeaderAuthorization))
	}
	return cfg
}

// validToken reports whether auth is a bearer token that the JWT middleware configured by cfg would accept.
func validToken(cfg middleware.JWTConfig, auth string) bool {
	scheme := cfg.AuthScheme
	if scheme == "" {
		scheme = middleware.DefaultJWTConfig.AuthScheme
	}
	l := len(scheme)
	if len(auth) <= l+1 || auth[:l] != scheme {
		return false
	}

	_, err := jwt.ParseWithClaims(auth[l+1:], new(Claims), func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != cfg.SigningMethod {
			return nil, errors.Errorf("unexpected jwt signing method=%v", t.Header["alg"])
		}
		return cfg.SigningKey, nil
	})
	return err == nil
}

// NewClaims returns the claims of a session token for usr.
// origIat is the issue time of the first token of the session (now when omitted).
func NewClaims(conf *core.Config, usr staff.User, origIat ...int64) *Claims {
	now := core.NowFunc()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    conf.AppName,
			Subject:   strconv.FormatInt(usr.ID, 10),
			Audience:  tokenAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Username:     usr.Username,
		Role:         usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextUser returns the staff user loaded by staffMiddleware.
func getContextUser(ctx echo.Context) (staff.User, bool) {
	usr, ok := ctx.Get(contextUserKey).(staff.User)
	return usr, ok
}

// isStaff reports whether an active staff user is attached to the request.
func isStaff(ctx echo.Context) bool {
	_, ok := getContextUser(ctx)
	return ok
}

// loadClaimsUser finds the staff user a token was issued to.
func (s *Server) loadClaimsUser(ctx echo.Context, claims Claims) (staff.User, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return staff.User{}, errSessionInvalid
	}
	usr, err := s.deps.StaffSvc.Get(ctx.Request().Context(), id)
	if err != nil {
		if core.IsNotFound(err) {
			return staff.User{}, errSessionInvalid
		}
		return staff.User{}, errors.Wrap(err, "finding staff user")
	}
	return usr, nil
}

type (
	loginRequest struct {
		Username string `json:"usuario"`
		Password string `json:"password"`
	}

	loginResponse struct {
		ID       int64      `json:"id"`
		Username string     `json:"usuario"`
		Name     string     `json:"nombre"`
		Role     staff.Role `json:"rol"`
		Token    string     `json:"token"`
	}

	tokenResponse struct {
		Token string `json:"token"`
	}
)

func (s *Server) login(ctx echo.Context) error {
	var data loginRequest
	if err := bind(ctx, &data); err != nil {
		return err
	}
	if core.CleanString(data.Username) == "" || data.Password == "" {
		return core.NewValidationError(errMissingCredentials)
	}

	usr, err := s.deps.StaffSvc.Login(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		if errors.Cause(err) == staff.ErrInvalidCredentials {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "logging in")
	}

	token, err := GenerateToken(s.deps.Conf, NewClaims(s.deps.Conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, loginResponse{
		ID:       usr.ID,
		Username: usr.Username,
		Name:     usr.Name,
		Role:     usr.Role,
		Token:    token,
	})
}

// refreshToken issues a new token for the session, until JWTRefreshExpirationDelta after the session's first token.
func (s *Server) refreshToken(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	usr, ok := getContextUser(ctx)
	if !ok {
		return errUnauthorized
	}

	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(s.deps.Conf.Server.JWTRefreshExpirationDelta)
	if core.NowFunc().After(expTime) {
		return errRefreshExpired
	}

	token, err := GenerateToken(s.deps.Conf, NewClaims(s.deps.Conf, usr, claims.OrigIssuedAt))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, tokenResponse{Token: token})
}
