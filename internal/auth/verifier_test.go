package auth

import (
  "context"
  "crypto/rand"
  "crypto/rsa"
  "encoding/base64"
  "encoding/json"
  "fmt"
  "math/big"
  "net/http"
  "net/http/httptest"
  "sync/atomic"
  "testing"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to init test logger: %v", err)
  }
  return log
}

func generateKey(t *testing.T) *rsa.PrivateKey {
  t.Helper()
  key, err := rsa.GenerateKey(rand.Reader, 2048)
  require.NoError(t, err)
  return key
}

func jwksFor(keys map[string]*rsa.PublicKey) jwksDocument {
  doc := jwksDocument{}
  for kid, pub := range keys {
    doc.Keys = append(doc.Keys, jwksKey{
      Kty: "RSA",
      Kid: kid,
      Use: "sig",
      Alg: "RS256",
      N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
      E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
    })
  }
  return doc
}

func jwksServer(t *testing.T, keys map[string]*rsa.PublicKey, fetches *atomic.Int32) *httptest.Server {
  t.Helper()
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    if fetches != nil {
      fetches.Add(1)
    }
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(jwksFor(keys))
  }))
  t.Cleanup(srv.Close)
  return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
  t.Helper()
  token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
  if kid != "" {
    token.Header["kid"] = kid
  }
  signed, err := token.SignedString(key)
  require.NoError(t, err)
  return signed
}

func TestVerifyExtractsSubjectAndEmail(t *testing.T) {
  key := generateKey(t)
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, nil)
  v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "", 0)
  require.NoError(t, err)

  token := signToken(t, key, "key-1", jwt.MapClaims{
    "sub":   "user-a",
    "email": "a@example.com",
    "exp":   time.Now().Add(time.Hour).Unix(),
  })
  identity, err := v.Verify(context.Background(), token)
  require.NoError(t, err)
  assert.Equal(t, "user-a", identity.UserID)
  assert.Equal(t, "a@example.com", identity.Email)
}

func TestVerifyAcceptsMissingEmail(t *testing.T) {
  key := generateKey(t)
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, nil)
  v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "", 0)
  require.NoError(t, err)

  token := signToken(t, key, "key-1", jwt.MapClaims{
    "sub": "user-a",
    "exp": time.Now().Add(time.Hour).Unix(),
  })
  identity, err := v.Verify(context.Background(), token)
  require.NoError(t, err)
  assert.Equal(t, "user-a", identity.UserID)
  assert.Empty(t, identity.Email)
}

func TestVerifyFailureModesCollapseToUnauthenticated(t *testing.T) {
  key := generateKey(t)
  otherKey := generateKey(t)
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, nil)

  freshClaims := jwt.MapClaims{"sub": "user-a", "exp": time.Now().Add(time.Hour).Unix()}

  cases := []struct {
    name  string
    token func(t *testing.T) string
  }{
    {"empty token", func(t *testing.T) string { return "" }},
    {"garbage token", func(t *testing.T) string { return "not.a.jwt" }},
    {"wrong signing key", func(t *testing.T) string {
      return signToken(t, otherKey, "key-1", freshClaims)
    }},
    {"expired", func(t *testing.T) string {
      return signToken(t, key, "key-1", jwt.MapClaims{"sub": "user-a", "exp": time.Now().Add(-time.Hour).Unix()})
    }},
    {"no expiry", func(t *testing.T) string {
      return signToken(t, key, "key-1", jwt.MapClaims{"sub": "user-a"})
    }},
    {"missing subject", func(t *testing.T) string {
      return signToken(t, key, "key-1", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
    }},
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "", 0)
      require.NoError(t, err)
      _, err = v.Verify(context.Background(), tc.token(t))
      assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
    })
  }
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
  key := generateKey(t)
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, nil)
  v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "https://issuer.example.com", 0)
  require.NoError(t, err)

  token := signToken(t, key, "key-1", jwt.MapClaims{
    "sub": "user-a",
    "iss": "https://evil.example.com",
    "exp": time.Now().Add(time.Hour).Unix(),
  })
  _, err = v.Verify(context.Background(), token)
  assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestVerifyWhenKeySetUnreachable(t *testing.T) {
  key := generateKey(t)
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, nil)
  srv.Close()
  v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "", 0)
  require.NoError(t, err)

  token := signToken(t, key, "key-1", jwt.MapClaims{
    "sub": "user-a",
    "exp": time.Now().Add(time.Hour).Unix(),
  })
  _, err = v.Verify(context.Background(), token)
  assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestVerifyCachesKeySet(t *testing.T) {
  key := generateKey(t)
  var fetches atomic.Int32
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, &fetches)
  v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "", time.Hour)
  require.NoError(t, err)

  for i := 0; i < 3; i++ {
    token := signToken(t, key, "key-1", jwt.MapClaims{
      "sub": fmt.Sprintf("user-%d", i),
      "exp": time.Now().Add(time.Hour).Unix(),
    })
    _, err := v.Verify(context.Background(), token)
    require.NoError(t, err)
  }
  assert.Equal(t, int32(1), fetches.Load())
}

func TestVerifyRefetchesOnUnknownKid(t *testing.T) {
  key := generateKey(t)
  var fetches atomic.Int32
  srv := jwksServer(t, map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, &fetches)
  v, err := NewJWKSVerifier(newTestLogger(t), srv.URL, "", time.Hour)
  require.NoError(t, err)

  good := signToken(t, key, "key-1", jwt.MapClaims{
    "sub": "user-a",
    "exp": time.Now().Add(time.Hour).Unix(),
  })
  _, err = v.Verify(context.Background(), good)
  require.NoError(t, err)
  require.Equal(t, int32(1), fetches.Load())

  // A kid the cached set does not hold forces one refetch, then fails
  // because the endpoint still does not serve it.
  unknown := signToken(t, key, "key-2", jwt.MapClaims{
    "sub": "user-a",
    "exp": time.Now().Add(time.Hour).Unix(),
  })
  _, err = v.Verify(context.Background(), unknown)
  assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
  assert.Equal(t, int32(2), fetches.Load())
}

func TestParseRSAKeyRoundTrip(t *testing.T) {
  key := generateKey(t)
  jwk := jwksKey{
    Kty: "RSA",
    Kid: "key-1",
    N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
    E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
  }
  pub, err := parseRSAKey(jwk)
  require.NoError(t, err)
  assert.Equal(t, 0, pub.N.Cmp(key.PublicKey.N))
  assert.Equal(t, key.PublicKey.E, pub.E)
}
