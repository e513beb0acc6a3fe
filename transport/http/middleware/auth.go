package middleware

import (
	"context"
	"errors"
	"net/http"
	"resto/config"
	"resto/infras/identity"
	"resto/infras/otel"
	"resto/permissions"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	verifier   identity.Verifier
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(verifier identity.Verifier, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		verifier:   verifier,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// RoleFromContext returns the role granted by the auth middlewares.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(constant.ContextKeyRole).(string)

	return role
}

// Auth verifies the bearer token with the identity provider and stores the
// caller in the request context. Public routes and operator calls pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		ctx, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		path, permission := m.find(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if permission.Skip || RoleFromContext(ctx) == permissions.RoleOperator {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized("Missing authorization header")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		token, err := identity.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("Invalid authorization header format")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		caller, err := m.verifier.Verify(ctx, token)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, identity.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, identity.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Invalid token"
			}

			log.Warn().Err(err).Str("path", path).Msg("rejected bearer token")

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = identity.WithIdentity(request.Context(), caller)
		ctx = context.WithValue(ctx, constant.ContextKeyRole, permissions.RoleGuest)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the role granted by Auth or APIKey against the route's entry.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		_, permission := m.find(request)

		if m.permission.Skip || permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		role := RoleFromContext(request.Context())

		if !permission.Allows(role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Roles,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey grants the operator role to internal callers presenting the
// configured key. Requests without the header continue as clients.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx := context.WithValue(request.Context(), constant.ContextKeyRole, permissions.RoleOperator)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) find(request *http.Request) (string, permissions.Permission) {
	if m.permission == nil {
		return request.URL.Path, permissions.Permission{}
	}

	path := request.URL.Path
	if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.Routes != nil {
		if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
			path = pattern
		}
	}

	return path, m.permission.FindPermissions(path, request.Method)
}
