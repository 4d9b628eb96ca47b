package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/gogoanime-api/internal/api/shared"
	"github.com/phrazzld/gogoanime-api/internal/platform/logger"
	"github.com/samber/mo"
)

// operation is one provider call taking the bound arguments of a route.
type operation[A, T any] func(ctx context.Context, args A) (T, error)

// noArgs is the argument struct of routes without parameters.
type noArgs struct{}

// dispatch builds the handler of one route: bind, validate, invoke, reply.
func dispatch[A, T any](h *GogoanimeHandler, name string, class FailureClass, op operation[A, T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), h.logger).With(slog.String("operation", name))
		log.Debug("dispatching request", slog.String("path", r.URL.Path))

		reply(w, r, class, invoke(r, op))
	}
}

// invoke runs op at most once. Binding or validation failures short-circuit
// before the provider is reached.
func invoke[A, T any](r *http.Request, op operation[A, T]) mo.Result[T] {
	var args A
	if err := shared.BindRequest(r, &args); err != nil {
		return mo.Err[T](fmt.Errorf("%w: %v", errInternal, err))
	}
	if err := shared.ValidateRequest(&args); err != nil {
		return mo.Err[T](validationErrorFrom(err))
	}
	return mo.TupleToResult(op(r.Context(), args))
}

// reply answers exactly one of the two branches of result.
func reply[T any](w http.ResponseWriter, r *http.Request, class FailureClass, result mo.Result[T]) {
	if result.IsError() {
		err := result.Error()
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err, class),
			GetSafeErrorMessage(err, class),
			err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result.MustGet())
}
