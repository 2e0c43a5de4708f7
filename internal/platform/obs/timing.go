package obs

import (
	"context"
	"log"
	"strings"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Logger receives Time lines. Tests swap it for a buffer-backed logger.
var Logger = log.Default()

// Time logs the outcome and duration of the named operation when the returned func runs.
// Use with a named error result: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		var b strings.Builder
		if reqID != "" {
			b.WriteString("req_id=" + reqID + " ")
		}
		b.WriteString("op=" + name)

		dur := time.Since(start).Milliseconds()
		if errp != nil && *errp != nil {
			Logger.Printf("%s status=error dur=%dms err=%v", b.String(), dur, *errp)
			return
		}
		Logger.Printf("%s status=ok dur=%dms", b.String(), dur)
	}
}

// WithRequestID returns ctx carrying id for Time output.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
