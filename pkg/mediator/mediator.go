package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("mediator")

// UnregisteredRequestError is returned by Send when no handler producing the
// requested response type is registered for the request's type.
type UnregisteredRequestError struct {
	RequestType  reflect.Type
	ResponseType reflect.Type
}

func (e *UnregisteredRequestError) Error() string {
	return fmt.Sprintf("mediator: no handler registered for %s -> %s", e.RequestType, e.ResponseType)
}

type registration struct {
	responseType reflect.Type
	handler      any
}

// Mediator routes a request to the single handler registered for its type.
// It is immutable once built and safe for concurrent use.
type Mediator struct {
	handlers map[reflect.Type]registration
}

// Builder collects handler registrations before the Mediator starts serving
type Builder struct {
	handlers map[reflect.Type]registration
	errs     []error
}

// NewBuilder creates an empty registration builder
func NewBuilder() *Builder {
	return &Builder{handlers: make(map[reflect.Type]registration)}
}

// Register binds handler to TRequest. Registering a second handler for the
// same request type is reported by Build.
func Register[TRequest any, TResponse any](b *Builder, handler func(context.Context, TRequest) (TResponse, error)) {
	requestType := reflect.TypeFor[TRequest]()
	if handler == nil {
		b.errs = append(b.errs, fmt.Errorf("mediator: nil handler for %s", requestType))
		return
	}
	if _, exists := b.handlers[requestType]; exists {
		b.errs = append(b.errs, fmt.Errorf("mediator: duplicate handler for %s", requestType))
		return
	}
	b.handlers[requestType] = registration{
		responseType: reflect.TypeFor[TResponse](),
		handler:      handler,
	}
}

// Build freezes the registrations into a Mediator
func (b *Builder) Build() (*Mediator, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	handlers := make(map[reflect.Type]registration, len(b.handlers))
	for k, v := range b.handlers {
		handlers[k] = v
	}
	return &Mediator{handlers: handlers}, nil
}

// RequestTypes lists the registered request type names, sorted
func (m *Mediator) RequestTypes() []string {
	names := make([]string, 0, len(m.handlers))
	for t := range m.handlers {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Send dispatches request to its handler and returns the handler's result
// unchanged. ctx is handed to the handler as is.
func Send[TResponse any, TRequest any](ctx context.Context, m *Mediator, request TRequest) (TResponse, error) {
	var zero TResponse

	requestType := reflect.TypeFor[TRequest]()
	reg, ok := m.handlers[requestType]
	if !ok {
		return zero, &UnregisteredRequestError{RequestType: requestType, ResponseType: reflect.TypeFor[TResponse]()}
	}

	handler, ok := reg.handler.(func(context.Context, TRequest) (TResponse, error))
	if !ok {
		return zero, &UnregisteredRequestError{RequestType: requestType, ResponseType: reflect.TypeFor[TResponse]()}
	}

	ctx, span := tracer.Start(ctx, "mediator.Send",
		trace.WithAttributes(
			attribute.String("mediator.request", requestType.String()),
			attribute.String("mediator.response", reg.responseType.String()),
		),
	)
	defer span.End()

	response, err := handler(ctx, request)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return response, err
	}

	return response, nil
}
