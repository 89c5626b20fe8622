package http

import (
	"github.com/indigo-web/syshttp/config"
	"github.com/indigo-web/syshttp/http/status"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

type Header struct {
	Key, Value string
}

// preallocating a few extra seats is cheaper than growing the slice per header
const preallocRespHeaders = 7

// Response is a builder for the response the engine serializes once the handler
// returns. Default headers from the config are seeded in on creation and can be
// overridden by adding a header with the same key.
type Response struct {
	code    status.Code
	status  status.Status
	headers []Header
	body    []byte
}

// NewResponse returns a new instance of the Response object with the status code
// set to 200 OK and pre-allocated space for response headers.
func NewResponse(cfg *config.Config) *Response {
	resp := &Response{
		code:    status.OK,
		headers: make([]Header, 0, len(cfg.Headers.Default)+preallocRespHeaders),
	}

	for key, value := range cfg.Headers.Default {
		resp.headers = append(resp.headers, Header{key, value})
	}

	return resp
}

// Code sets a response code. The corresponding status text is derived at
// serialization time, unless set explicitly via Status.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Status sets a custom status text. Usually totally ignored by clients, so there
// is rarely a reason to use this.
func (r *Response) Status(s status.Status) *Response {
	r.status = s
	return r
}

// Header adds header values to a key.
func (r *Response) Header(key string, values ...string) *Response {
	for i := range values {
		r.headers = append(r.headers, Header{
			Key:   key,
			Value: values[i],
		})
	}

	return r
}

// String sets the response's body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to the passed slice WITHOUT COPYING. Changing the
// passed slice later will affect the response by itself.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

// TryJSON serializes a model into the response's body and returns an error, if any.
func (r *Response) TryJSON(model any) (*Response, error) {
	r.body = r.body[:0]
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.Header("Content-Type", "application/json"), err
}

// JSON does the same as TryJSON does, except a returned error is implicitly
// converted into a 500 Internal Server Error response.
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Write implements the io.Writer interface. It always returns n=len(b) and err=nil.
func (r *Response) Write(b []byte) (n int, err error) {
	r.body = append(r.body, b...)
	return len(b), nil
}

// Error returns the response builder with an error set. Custom codes can be passed,
// however only the first will be used. By default, the code is 500.
func (r *Response) Error(err error, code ...status.Code) *Response {
	if err == nil {
		return r
	}

	c := status.InternalServerError
	if len(code) > 0 {
		// peek the first, ignore the rest
		c = code[0]
	}

	return r.
		Code(c).
		String(err.Error())
}

// StatusCode reveals the code set on the builder.
func (r *Response) StatusCode() status.Code {
	return r.code
}

// StatusText reveals either the explicitly set status text or the one derived
// from the code.
func (r *Response) StatusText() status.Status {
	if len(r.status) > 0 {
		return r.status
	}

	return status.Text(r.code)
}

// Headers reveals the accumulated header pairs.
func (r *Response) Headers() []Header {
	return r.headers
}

// Body reveals the response body.
func (r *Response) Body() []byte {
	return r.body
}

// Clear discards everything was done with the Response object before, except the
// default headers.
func (r *Response) Clear(cfg *config.Config) *Response {
	r.code = status.OK
	r.status = ""
	r.body = nil
	r.headers = r.headers[:0]

	for key, value := range cfg.Headers.Default {
		r.headers = append(r.headers, Header{key, value})
	}

	return r
}
