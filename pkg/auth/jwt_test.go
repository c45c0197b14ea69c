package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "crm-test",
		Expiration: 15 * time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken_HMAC(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken("user-42", []string{RoleUnderwriter, RoleSales})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "crm-test", claims.Issuer)
	assert.Equal(t, []string{RoleUnderwriter, RoleSales}, claims.Roles)
}

func TestGenerateAndValidateToken_RSA(t *testing.T) {
	privPEM, pubPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: string(privPEM), Issuer: "crm", Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: string(pubPEM), Issuer: "crm"})
	require.NoError(t, err)

	token, err := issuer.GenerateToken("user-1", []string{RoleAnalyst})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = validator.GenerateToken("user-1", nil)
	assert.ErrorContains(t, err, "validation-only")

	// An HMAC token must not pass an RSA validator.
	hmacToken, err := newTestJWTService(t).GenerateToken("user-1", nil)
	require.NoError(t, err)
	_, err = validator.ValidateToken(hmacToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)

	_, err = NewJWTService(JWTConfig{PublicKeyPEM: "not a key"})
	assert.Error(t, err)
}

func TestValidateToken_Rejections(t *testing.T) {
	good := newTestJWTService(t)

	expiredSvc, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "crm-test", Expiration: -time.Hour})
	require.NoError(t, err)
	expired, err := expiredSvc.GenerateToken("u", nil)
	require.NoError(t, err)

	otherKeySvc, err := NewJWTService(JWTConfig{Secret: "another-secret", Issuer: "crm-test", Expiration: time.Hour})
	require.NoError(t, err)
	wrongKey, err := otherKeySvc.GenerateToken("u", nil)
	require.NoError(t, err)

	otherIssuerSvc, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "elsewhere", Expiration: time.Hour})
	require.NoError(t, err)
	wrongIssuer, err := otherIssuerSvc.GenerateToken("u", nil)
	require.NoError(t, err)

	audienceSvc, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "crm-test", Audience: "billing", Expiration: time.Hour})
	require.NoError(t, err)
	wrongAudience, err := audienceSvc.GenerateToken("u", nil)
	require.NoError(t, err)

	strict, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "crm-test", Audience: "underwriting"})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong key":    wrongKey,
		"wrong issuer": wrongIssuer,
		"garbage":      "a.b.c",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := good.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = strict.ValidateToken(wrongAudience)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong audience")
}

func TestValidateToken_Leeway(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Expiration: -10 * time.Second})
	require.NoError(t, err)
	token, err := issuer.GenerateToken("u", nil)
	require.NoError(t, err)

	strict, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests"})
	require.NoError(t, err)
	_, err = strict.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	lenient, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Leeway: time.Minute})
	require.NoError(t, err)
	_, err = lenient.ValidateToken(token)
	assert.NoError(t, err)
}

func TestClaims_IsInternalStaff(t *testing.T) {
	tests := []struct {
		roles []string
		want  bool
	}{
		{[]string{RoleAdmin}, true},
		{[]string{RoleSales}, true},
		{[]string{RoleUnderwriter}, true},
		{[]string{RoleAnalyst}, true},
		{[]string{RolePartner}, false},
		{[]string{RoleAnalyst, RolePartner}, false},
		{[]string{"viewer"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Claims{Roles: tt.roles}.IsInternalStaff(), "%v", tt.roles)
	}
}

func TestClaims_Actor(t *testing.T) {
	c := Claims{UserID: "user-1"}
	c.Subject = "sub-1"
	assert.Equal(t, "user-1", c.Actor())

	c.UserID = ""
	assert.Equal(t, "sub-1", c.Actor())
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	expected := &Claims{UserID: "user-1", Roles: []string{RoleSales}}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), expected))
	require.True(t, ok)
	assert.Same(t, expected, got)
}

// --- gRPC interceptors ---

func okHandler(ctx context.Context, _ interface{}) (interface{}, error) {
	claims, _ := ClaimsFromContext(ctx)
	return claims, nil
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken("user-1", []string{RoleSales})
	require.NoError(t, err)

	interceptor := UnaryAuthInterceptor(svc, []string{"/svc/Public"})

	t.Run("skipped method", func(t *testing.T) {
		_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Public"}, okHandler)
		assert.NoError(t, err)
	})

	t.Run("missing header", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.MD{})
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Private"}, okHandler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("bad token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope"))
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Private"}, okHandler)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid bearer token", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
		resp, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Private"}, okHandler)
		require.NoError(t, err)
		assert.Equal(t, "user-1", resp.(*Claims).UserID)
	})
}

func TestRequireInternalStaff(t *testing.T) {
	interceptor := RequireInternalStaff("/svc/Score")
	staff := ContextWithClaims(context.Background(), &Claims{Roles: []string{RoleUnderwriter}})
	partner := ContextWithClaims(context.Background(), &Claims{Roles: []string{RolePartner}})

	_, err := interceptor(staff, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Score"}, okHandler)
	assert.NoError(t, err)

	_, err = interceptor(partner, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Score"}, okHandler)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Score"}, okHandler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = interceptor(partner, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Browse"}, okHandler)
	assert.NoError(t, err, "unguarded methods admit partners")
}

// --- HTTP middleware ---

func TestHTTPMiddleware(t *testing.T) {
	svc := newTestJWTService(t)
	staffToken, err := svc.GenerateToken("user-1", []string{RoleAdmin})
	require.NoError(t, err)
	partnerToken, err := svc.GenerateToken("user-2", []string{RolePartner})
	require.NoError(t, err)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		_, _ = w.Write([]byte(claims.UserID))
	})
	authOnly := Middleware(svc)(inner)
	staffOnly := Middleware(svc)(RequireInternalStaffHTTP(inner))

	tests := []struct {
		name    string
		handler http.Handler
		header  string
		want    int
	}{
		{"no header", authOnly, "", http.StatusUnauthorized},
		{"bad token", authOnly, "Bearer junk", http.StatusUnauthorized},
		{"partner may browse", authOnly, "Bearer " + partnerToken, http.StatusOK},
		{"partner may not score", staffOnly, "Bearer " + partnerToken, http.StatusForbidden},
		{"staff may score", staffOnly, "Bearer " + staffToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
