package auth

import (
  "context"
  "crypto/rsa"
  "encoding/base64"
  "encoding/json"
  "fmt"
  "math/big"
  "net/http"
  "strings"
  "sync"
  "time"

  "github.com/golang-jwt/jwt/v5"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/logger"
)

// Identity is what a verified bearer credential resolves to. Email may be
// empty when the token carries no email claim.
type Identity struct {
  UserID  string
  Email   string
}

type TokenVerifier interface {
  Verify(ctx context.Context, tokenString string) (Identity, error)
}

// jwksVerifier validates RS256 bearer tokens against a remote JWKS document.
// The key set is cached in-process; an unknown key id forces one refetch.
// Every failure mode collapses to apperrors.ErrUnauthenticated so callers
// never leak verification internals.
type jwksVerifier struct {
  log       *logger.Logger
  client    *http.Client
  jwksURL   string
  issuer    string
  cacheTTL  time.Duration

  mu        sync.RWMutex
  keys      map[string]*rsa.PublicKey
  fetchedAt time.Time
}

func NewJWKSVerifier(log *logger.Logger, jwksURL, issuer string, cacheTTL time.Duration) (TokenVerifier, error) {
  serviceLog := log.With("service", "JWKSVerifier")
  if jwksURL == "" {
    return nil, fmt.Errorf("missing JWKS URL")
  }
  if cacheTTL <= 0 {
    cacheTTL = 15 * time.Minute
  }
  return &jwksVerifier{
    log:      serviceLog,
    client:   &http.Client{Timeout: 10 * time.Second},
    jwksURL:  jwksURL,
    issuer:   issuer,
    cacheTTL: cacheTTL,
    keys:     map[string]*rsa.PublicKey{},
  }, nil
}

func (v *jwksVerifier) Verify(ctx context.Context, tokenString string) (Identity, error) {
  if strings.TrimSpace(tokenString) == "" {
    return Identity{}, apperrors.ErrUnauthenticated
  }
  opts := []jwt.ParserOption{
    jwt.WithValidMethods([]string{"RS256"}),
    jwt.WithExpirationRequired(),
  }
  if v.issuer != "" {
    opts = append(opts, jwt.WithIssuer(v.issuer))
  }
  claims := jwt.MapClaims{}
  if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    kid, _ := t.Header["kid"].(string)
    return v.keyForKid(ctx, kid)
  }, opts...); err != nil {
    v.log.Warn("token verification failed", "error", err)
    return Identity{}, apperrors.ErrUnauthenticated
  }
  sub, err := claims.GetSubject()
  if err != nil || sub == "" {
    v.log.Warn("verified token is missing a subject claim")
    return Identity{}, apperrors.ErrUnauthenticated
  }
  email, _ := claims["email"].(string)
  return Identity{UserID: sub, Email: email}, nil
}

func (v *jwksVerifier) keyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
  v.mu.RLock()
  key, ok := v.lookupLocked(kid)
  fresh := time.Since(v.fetchedAt) < v.cacheTTL
  v.mu.RUnlock()
  if ok && fresh {
    return key, nil
  }

  // Cache miss or stale: refetch once, then answer from whatever we got.
  if err := v.refresh(ctx); err != nil {
    return nil, err
  }

  v.mu.RLock()
  defer v.mu.RUnlock()
  key, ok = v.lookupLocked(kid)
  if !ok {
    return nil, fmt.Errorf("no key in JWKS for kid %q", kid)
  }
  return key, nil
}

// lookupLocked resolves a kid against the cached set. A token without a kid
// is accepted only when the set holds exactly one key.
func (v *jwksVerifier) lookupLocked(kid string) (*rsa.PublicKey, bool) {
  if kid == "" {
    if len(v.keys) == 1 {
      for _, k := range v.keys {
        return k, true
      }
    }
    return nil, false
  }
  key, ok := v.keys[kid]
  return key, ok
}

type jwksDocument struct {
  Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
  Kty string `json:"kty"`
  Kid string `json:"kid"`
  Use string `json:"use"`
  Alg string `json:"alg"`
  N   string `json:"n"`
  E   string `json:"e"`
}

func (v *jwksVerifier) refresh(ctx context.Context) error {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
  if err != nil {
    v.log.Warn("failed to build JWKS request", "error", err)
    return err
  }
  resp, err := v.client.Do(req)
  if err != nil {
    v.log.Warn("failed to fetch JWKS", "error", err)
    return err
  }
  defer resp.Body.Close()

  if resp.StatusCode < 200 || resp.StatusCode > 299 {
    v.log.Warn("JWKS endpoint responded with non-2xx", "statusCode", resp.StatusCode)
    return fmt.Errorf("JWKS endpoint HTTP %d", resp.StatusCode)
  }
  var doc jwksDocument
  if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
    v.log.Warn("failed to decode JWKS document", "error", err)
    return err
  }

  keys := map[string]*rsa.PublicKey{}
  for _, k := range doc.Keys {
    if k.Kty != "RSA" {
      continue
    }
    pub, err := parseRSAKey(k)
    if err != nil {
      v.log.Warn("skipping unparseable JWKS key", "kid", k.Kid, "error", err)
      continue
    }
    keys[k.Kid] = pub
  }
  if len(keys) == 0 {
    return fmt.Errorf("JWKS document contained no usable RSA keys")
  }

  v.mu.Lock()
  v.keys = keys
  v.fetchedAt = time.Now()
  v.mu.Unlock()
  v.log.Debug("JWKS cache refreshed", "keyCount", len(keys))
  return nil
}

func parseRSAKey(k jwksKey) (*rsa.PublicKey, error) {
  nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
  if err != nil {
    return nil, fmt.Errorf("bad modulus: %w", err)
  }
  eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
  if err != nil {
    return nil, fmt.Errorf("bad exponent: %w", err)
  }
  e := 0
  for _, b := range eBytes {
    e = e<<8 | int(b)
  }
  if e == 0 {
    return nil, fmt.Errorf("zero exponent")
  }
  return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
