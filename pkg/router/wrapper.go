package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.Handler {
	befores := append([]MiddlewareFunc{}, router.befores...)
	closers := append([]CloserFunc{}, router.closers...)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, state := withState(router.ctx)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = mergeCancel(ctx, r.Context())

		defer func() {
			if p := recover(); p != nil {
				xcontext.Logger(ctx).Errorf("Panic when handling %s: %v", r.URL.Path, p)
				state.err = errorx.Unknown
			}

			writeResult(ctx, w, state)
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		if r.Method != method {
			state.err = errorx.New(errorx.BadRequest, "Method %s is not allowed", r.Method)
			return
		}

		var err error
		for _, before := range befores {
			if ctx, err = before(ctx); err != nil {
				state.err = err
				return
			}
		}

		req := new(Request)
		if err := bind(r, req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			state.err = errorx.New(errorx.BadRequest, "Invalid request")
			return
		}

		resp, err := handler(ctx, req)
		if err != nil {
			state.err = err
			return
		}
		state.response = resp
	})
}

func writeResult(ctx context.Context, w http.ResponseWriter, state *requestState) {
	resp := newResponse(state.response)
	if state.err != nil {
		resp = newErrorResponse(state.err)
	}

	if err := WriteJson(w, resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}

func bind(r *http.Request, req any) error {
	switch r.Method {
	case http.MethodGet:
		return bindQuery(r.URL.Query(), req)
	case http.MethodPost:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		if len(b) == 0 {
			return nil
		}

		return json.Unmarshal(b, req)
	}

	return nil
}

func bindQuery(values url.Values, req any) error {
	input := map[string]any{}
	for k, v := range values {
		if len(v) == 1 {
			input[k] = v[0]
		} else {
			input[k] = v
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

type mergedContext struct {
	context.Context
	cancel context.Context
}

// mergeCancel keeps the values of ctx but takes deadline and cancellation
// from the incoming request.
func mergeCancel(ctx, cancel context.Context) context.Context {
	return &mergedContext{Context: ctx, cancel: cancel}
}

func (c *mergedContext) Deadline() (deadline time.Time, ok bool) {
	return c.cancel.Deadline()
}

func (c *mergedContext) Done() <-chan struct{} {
	return c.cancel.Done()
}

func (c *mergedContext) Err() error {
	return c.cancel.Err()
}
