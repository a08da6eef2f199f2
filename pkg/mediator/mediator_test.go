package mediator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct{ Value string }

type countRequest struct{}

type unknownRequest struct{}

type ctxKey struct{}

func buildMediator(t *testing.T, register func(b *Builder)) *Mediator {
	t.Helper()
	b := NewBuilder()
	register(b)
	m, err := b.Build()
	require.NoError(t, err)
	return m
}

func TestSend_PassesThroughHandlerResult(t *testing.T) {
	calls := 0
	m := buildMediator(t, func(b *Builder) {
		Register(b, func(ctx context.Context, req echoRequest) (string, error) {
			calls++
			return "echo:" + req.Value, nil
		})
		Register(b, func(ctx context.Context, req countRequest) (int, error) {
			t.Fatal("count handler must not be invoked")
			return 0, nil
		})
	})

	got, err := Send[string](context.Background(), m, echoRequest{Value: "a"})
	require.NoError(t, err)
	assert.Equal(t, "echo:a", got)
	assert.Equal(t, 1, calls)
}

func TestSend_ReturnsHandlerErrorUnchanged(t *testing.T) {
	boom := errors.New("boom")
	m := buildMediator(t, func(b *Builder) {
		Register(b, func(ctx context.Context, req countRequest) (int, error) {
			return 3, boom
		})
	})

	got, err := Send[int](context.Background(), m, countRequest{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, got)
}

func TestSend_UnregisteredRequest(t *testing.T) {
	m := buildMediator(t, func(b *Builder) {
		Register(b, func(ctx context.Context, req echoRequest) (string, error) {
			return req.Value, nil
		})
	})

	t.Run("unknown request type", func(t *testing.T) {
		_, err := Send[string](context.Background(), m, unknownRequest{})
		var unregistered *UnregisteredRequestError
		require.ErrorAs(t, err, &unregistered)
		assert.Equal(t, "mediator.unknownRequest", unregistered.RequestType.String())
	})

	t.Run("registered request with another response type", func(t *testing.T) {
		_, err := Send[int](context.Background(), m, echoRequest{Value: "a"})
		var unregistered *UnregisteredRequestError
		require.ErrorAs(t, err, &unregistered)
		assert.Equal(t, "int", unregistered.ResponseType.String())
	})

	t.Run("empty mediator", func(t *testing.T) {
		empty := buildMediator(t, func(b *Builder) {})
		_, err := Send[string](context.Background(), empty, echoRequest{})
		var unregistered *UnregisteredRequestError
		assert.ErrorAs(t, err, &unregistered)
	})
}

func TestSend_PropagatesContext(t *testing.T) {
	m := buildMediator(t, func(b *Builder) {
		Register(b, func(ctx context.Context, req echoRequest) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			v, _ := ctx.Value(ctxKey{}).(string)
			return v, nil
		})
	})

	ctx := context.WithValue(context.Background(), ctxKey{}, "carried")
	got, err := Send[string](ctx, m, echoRequest{})
	require.NoError(t, err)
	assert.Equal(t, "carried", got)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Send[string](cancelled, m, echoRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_RejectsDuplicateAndNilHandlers(t *testing.T) {
	b := NewBuilder()
	Register(b, func(ctx context.Context, req echoRequest) (string, error) { return "", nil })
	Register(b, func(ctx context.Context, req echoRequest) (string, error) { return "", nil })
	Register[countRequest, int](b, nil)

	m, err := b.Build()
	assert.Nil(t, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate handler for mediator.echoRequest")
	assert.Contains(t, err.Error(), "nil handler for mediator.countRequest")
}

func TestBuilder_BuildIsIsolatedFromLaterRegistrations(t *testing.T) {
	b := NewBuilder()
	Register(b, func(ctx context.Context, req echoRequest) (string, error) { return "", nil })
	m, err := b.Build()
	require.NoError(t, err)

	Register(b, func(ctx context.Context, req countRequest) (int, error) { return 1, nil })

	assert.Equal(t, []string{"mediator.echoRequest"}, m.RequestTypes())
	_, err = Send[int](context.Background(), m, countRequest{})
	var unregistered *UnregisteredRequestError
	assert.ErrorAs(t, err, &unregistered)
}

func TestSend_ConcurrentDispatch(t *testing.T) {
	m := buildMediator(t, func(b *Builder) {
		Register(b, func(ctx context.Context, req echoRequest) (string, error) {
			return req.Value, nil
		})
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Send[string](context.Background(), m, echoRequest{Value: "x"})
			assert.NoError(t, err)
			assert.Equal(t, "x", got)
		}()
	}
	wg.Wait()
}
