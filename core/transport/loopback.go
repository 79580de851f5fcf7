package transport

import (
	"bytes"
	"io"
	"net/http"
)

// Loopback is an http.RoundTripper that serves requests directly from an
// in-process handler, with no socket. It stands in for the network the
// way a service-worker interceptor does in a browser: callers use a real
// http.Client, requests and responses are real, only the wire is absent.
type Loopback struct {
	Handler http.Handler
}

// NewClient returns an http.Client whose transport is the given handler.
func NewClient(handler http.Handler) *http.Client {
	return &http.Client{Transport: &Loopback{Handler: handler}}
}

func (l *Loopback) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := &recorder{header: make(http.Header)}
	l.Handler.ServeHTTP(rec, req)
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	code := rec.code
	if code == 0 {
		code = http.StatusOK
	}
	return &http.Response{
		StatusCode:    code,
		Status:        http.StatusText(code),
		Proto:         req.Proto,
		ProtoMajor:    req.ProtoMajor,
		ProtoMinor:    req.ProtoMinor,
		Header:        rec.header,
		Body:          io.NopCloser(bytes.NewReader(rec.body.Bytes())),
		ContentLength: int64(rec.body.Len()),
		Request:       req,
	}, nil
}

// recorder is a minimal in-memory http.ResponseWriter.
type recorder struct {
	header http.Header
	body   bytes.Buffer
	code   int
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) Write(p []byte) (int, error) {
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.body.Write(p)
}

func (r *recorder) WriteHeader(code int) {
	if r.code == 0 {
		r.code = code
	}
}
