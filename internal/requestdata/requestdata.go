package requestdata

import (
  "context"
)

type key struct{}

var requestDataKey key

// RequestData is the verified identity of the caller. It is set once by the
// auth middleware and read explicitly by services; nothing downstream ever
// trusts a user id supplied in a request body.
type RequestData struct {
  UserID  string
  Email   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}
