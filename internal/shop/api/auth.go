package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/logging"
)

type ctxKey int

const userKey ctxKey = iota

type authedUser struct {
	ID    domain.UserID
	Email string
	Role  domain.Role
}

type shopClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (a *API) signToken(user domain.User) (string, error) {
	now := time.Now()
	claims := shopClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
}

// requireAuth verifies the bearer token and puts the authenticated user on
// the request context.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Authorization header missing or malformed"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		claims := &shopClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return a.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !parsed.Valid {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid or expired token"})
			return
		}
		user := authedUser{
			ID:    domain.UserID(claims.Subject),
			Email: claims.Email,
			Role:  domain.Role(claims.Role),
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// requireAdmin stacks the admin check on top of requireAuth.
func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != domain.RoleAdmin {
			writeJSON(w, http.StatusForbidden, map[string]any{"message": "Admin privileges required"})
			return
		}
		next(w, r)
	})
}

func currentUser(r *http.Request) authedUser {
	user, _ := r.Context().Value(userKey).(authedUser)
	return user
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  map[string]any `json:"user"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "email & password required"})
		return
	}
	user, err := a.users.Authenticate(creds.Email, creds.Password)
	if err != nil {
		// Unknown email and wrong password look identical to the client.
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
		return
	}
	token, err := a.signToken(user)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.Log(logging.Fields{Service: "shop-server", UserID: string(user.ID), Step: "login", Status: "ok"})
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: publicUser(user)})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "email & password required"})
		return
	}
	user, err := a.users.Register(creds.Email, creds.Password, domain.Role(creds.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := a.signToken(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: publicUser(user)})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

// publicUser omits the password hash.
func publicUser(u domain.User) map[string]any {
	return map[string]any{"id": u.ID, "email": u.Email, "role": u.Role}
}
