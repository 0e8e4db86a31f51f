package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time returns a deferred-call decorator that logs the duration of the named
// operation, tagging it with the request id carried in ctx and the error the
// operation ended with, if any.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		ev := log.Debug()
		if errp != nil && *errp != nil {
			ev = log.Warn().Err(*errp)
		}
		ev.Str("req_id", reqID).Str("op", name).Int64("dur_ms", dur.Milliseconds()).Send()
	}
}
