package ctxutil

import "context"

type requestDataKey struct{}

// RequestData is the identity resolved at the HTTP boundary. Services read
// the user id from their arguments, never from here.
type RequestData struct {
	UserID   uint
	Explicit bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(Default(ctx), requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
