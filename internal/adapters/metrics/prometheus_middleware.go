package metrics

import (
	"context"
	"reflect"
	"time"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
)

// PrometheusMiddleware records duration, outcome and concurrency of every
// mediator request. A nil collector makes it a pass-through.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		end := collector.begin(commandName(request))
		start := time.Now()
		response, err := next(ctx, request)
		end(time.Since(start).Seconds(), err)
		return response, err
	}
}

// commandName is the request's type name without pointer or package, e.g.
// "*queries.FindMarketsQuery" becomes "FindMarketsQuery".
func commandName(request mediator.Request) string {
	if request == nil {
		return "unknown"
	}
	t := reflect.TypeOf(request)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
