package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/variants/internal/definitions"
	"github.com/yacobolo/variants/internal/server"
)

const fixture = `components:
  button:
    base: px-5 py-2
    variants:
      color:
        neutral: bg-slate-500
        accent: bg-teal-500
      outlined:
        "true": border
    defaultVariants:
      color: neutral
    compoundVariants:
      - variants: {color: accent, outlined: true}
        class: border-teal-600
  badge:
    base: inline-flex px-2
`

func testSet(t *testing.T, src string) *definitions.Set {
	t.Helper()
	f, err := definitions.Parse("ui.variants.yaml", []byte(src))
	require.NoError(t, err)
	return &definitions.Set{Files: []*definitions.File{f}}
}

func testRouter(t *testing.T, logs io.Writer) http.Handler {
	t.Helper()
	if logs == nil {
		logs = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	s, err := server.New(testSet(t, fixture), nil, logger)
	require.NoError(t, err)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := testRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Len(t, rec.Header().Get("X-Request-Id"), 36)
}

func TestRequestIDIsKept(t *testing.T) {
	h := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestListComponents(t *testing.T) {
	rec := do(t, testRouter(t, nil), http.MethodGet, "/components", "")
	require.Equal(t, http.StatusOK, rec.Code)

	want := `{"components":[
		{"name":"button","file":"ui.variants.yaml","base":"px-5 py-2","axes":[
			{"name":"color","options":["accent","neutral"],"boolean":false,"required":false,"default":"neutral"},
			{"name":"outlined","options":["true"],"boolean":true,"required":false}
		]},
		{"name":"badge","file":"ui.variants.yaml","base":"inline-flex px-2","axes":[]}
	]}`
	assert.JSONEq(t, want, rec.Body.String())
}

func TestGetComponent(t *testing.T) {
	h := testRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/components/badge", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "badge", decode(t, rec)["name"])

	rec = do(t, h, http.MethodGet, "/components/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `unknown component "nope"`, decode(t, rec)["error"])
}

func TestResolve(t *testing.T) {
	h := testRouter(t, nil)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		want   string
	}{
		{
			name:   "by body",
			path:   "/resolve",
			body:   `{"component":"button","selection":{"color":"accent","outlined":true}}`,
			status: http.StatusOK,
			want: `{"component":"button","class":"px-5 py-2 bg-teal-500 border border-teal-600",
				"effective":{"color":"accent","outlined":"true"},
				"fragments":["px-5 py-2","bg-teal-500","border","border-teal-600"]}`,
		},
		{
			name:   "by path with defaults",
			path:   "/components/button/resolve",
			body:   `{}`,
			status: http.StatusOK,
			want: `{"component":"button","class":"px-5 py-2 bg-slate-500",
				"effective":{"color":"neutral","outlined":"false"},
				"fragments":["px-5 py-2","bg-slate-500"]}`,
		},
		{
			name:   "class override",
			path:   "/components/button/resolve",
			body:   `{"selection":{"class":"px-8"}}`,
			status: http.StatusOK,
			want: `{"component":"button","class":"py-2 bg-slate-500 px-8",
				"effective":{"color":"neutral","outlined":"false"},
				"fragments":["px-5 py-2","bg-slate-500","px-8"]}`,
		},
		{
			name:   "strict rejects unknown option",
			path:   "/components/button/resolve",
			body:   `{"selection":{"color":"pink"},"strict":true}`,
			status: http.StatusUnprocessableEntity,
			want:   `{"error":"selection: axis \"color\": option \"pink\": unknown option"}`,
		},
		{
			name:   "missing component",
			path:   "/resolve",
			body:   `{"selection":{}}`,
			status: http.StatusBadRequest,
			want:   `{"error":"component is required"}`,
		},
		{
			name:   "unknown component",
			path:   "/resolve",
			body:   `{"component":"card"}`,
			status: http.StatusNotFound,
			want:   `{"error":"unknown component \"card\""}`,
		},
		{
			name:   "unknown field",
			path:   "/resolve",
			body:   `{"component":"button","variant":"x"}`,
			status: http.StatusBadRequest,
			want:   `{"error":"invalid request body: unknown field \"variant\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestMerge(t *testing.T) {
	h := testRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/merge", `{"class":"text-sm","classes":["px-2 py-1","px-4 text-lg"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"class":"py-1 px-4 text-lg","conflicts":[
		{"class":"text-sm","winner":"text-lg"},
		{"class":"px-2","winner":"px-4"}
	]}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/merge", `{"class":"flex"}`)
	assert.JSONEq(t, `{"class":"flex","conflicts":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/merge", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreview(t *testing.T) {
	h := testRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/components/button/preview?color=accent&as=button&text=Save+%26+exit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `<button class="px-5 py-2 bg-teal-500">Save &amp; exit</button>`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/components/badge/preview", "")
	assert.Equal(t, `<div class="inline-flex px-2">badge</div>`, rec.Body.String())
}

func TestRequestsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	h := testRouter(t, &logs)

	do(t, h, http.MethodGet, "/components/nope", "")

	out := logs.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/components/nope")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "request_id=")
}

func TestNewRejectsInvalidComponents(t *testing.T) {
	set := testSet(t, "components:\n  card:\n    variants:\n      size: {sm: p-1}\n    defaultVariants: {size: xl}\n")

	_, err := server.New(set, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `component "card" (ui.variants.yaml:2:3): defaultVariants: axis "size": option "xl": unknown option`)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, err := server.New(testSet(t, fixture), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.ListenAndServe(ctx, "127.0.0.1:0"))
}

func TestPreviewIgnoresNonAxisKeys(t *testing.T) {
	h := testRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/components/button/preview?x%3E%3Cscript%3Ealert(1)%3C/script=1&onmouseover=alert(2)&class=px-8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "onmouseover")
	assert.Equal(t, `<div class="py-2 bg-slate-500 px-8">button</div>`, body)
}

func TestPreviewRejectsBadTag(t *testing.T) {
	rec := do(t, testRouter(t, nil), http.MethodGet, "/components/badge/preview?as=x%3E%3Cscript", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `invalid tag "x><script"`, decode(t, rec)["error"])
}

func TestMetrics(t *testing.T) {
	h := testRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/resolve", `{"component":"button","selection":{"color":"accent"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/components/badge", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `variants_resolutions_total{component="button"} 1`)
	assert.Contains(t, body, `variants_http_requests_total{method="POST",route="/resolve",status="200"} 1`)
	assert.Contains(t, body, `variants_http_requests_total{method="GET",route="/components/{name}`)
	assert.Contains(t, body, "variants_components_loaded 2")
}
