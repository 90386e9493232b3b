package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Count: req.Count}, nil
}

func serve(t *testing.T, h http.Handler, r *http.Request) envelope {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRouter_GET(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echo)

	resp := serve(t, r.mux, httptest.NewRequest(http.MethodGet, "/echo?name=compost&count=3", nil))
	require.Zero(t, resp.Code)
	require.JSONEq(t, `{"name":"compost","count":3}`, string(resp.Data))
}

func TestRouter_POST(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)

	body := strings.NewReader(`{"name":"drip","count":2}`)
	resp := serve(t, r.mux, httptest.NewRequest(http.MethodPost, "/echo", body))
	require.Zero(t, resp.Code)
	require.JSONEq(t, `{"name":"drip","count":2}`, string(resp.Data))

	resp = serve(t, r.mux, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{")))
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func TestRouter_WrongMethod(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)

	resp := serve(t, r.mux, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
}

func TestRouter_Middlewares(t *testing.T) {
	r := New(context.Background())

	var closed []error
	r.AddCloser(func(ctx context.Context) {
		closed = append(closed, GetError(ctx))
	})

	denied := r.Branch()
	denied.Before(func(ctx context.Context) (context.Context, error) {
		return ctx, errorx.New(errorx.Unauthenticated, "Need login")
	})
	GET(denied, "/private", echo)
	GET(r, "/public", echo)

	resp := serve(t, r.mux, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)
	require.Equal(t, "Need login", resp.Error)

	// The parent router is not affected by the middleware of its branch.
	resp = serve(t, r.mux, httptest.NewRequest(http.MethodGet, "/public", nil))
	require.Zero(t, resp.Code)

	require.Len(t, closed, 2)
	require.ErrorIs(t, closed[0], errorx.New(errorx.Unauthenticated, ""))
	require.NoError(t, closed[1])
}

func TestRouter_Panic(t *testing.T) {
	r := New(context.Background())
	GET(r, "/panic", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		panic("boom")
	})

	resp := serve(t, r.mux, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}
