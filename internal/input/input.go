// Package input is the explicit request schema: which fields each endpoint
// reads, whether they're optional, and how their text becomes typed values.
//
// Every field arrives as text (form body, JSON body or query string) and is
// wrapped in a Field so "absent" and "present but empty" stay distinguishable.
// That difference matters: an absent duration coerces to NaN, an empty one to 0.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

// MaxBodyBytes caps request bodies. Nothing legitimate comes close.
const MaxBodyBytes = 1 << 20

// ErrBadBody means the body couldn't be read or decoded at all.
var ErrBadBody = errors.New("input: malformed request body")

// Field is one raw input value.
type Field struct {
	Value   string
	Present bool
}

// Set returns a present field holding v. Mostly for tests and callers that
// build input without an HTTP request.
func Set(v string) Field {
	return Field{Value: v, Present: true}
}

// UnmarshalJSON accepts strings, numbers and booleans and keeps their text.
// JSON null is treated as absent: a client sending {"date": null} means
// "no date", same as leaving the key out.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Set(s)
		return nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v := v.(type) {
	case json.Number:
		*f = Set(v.String())
	case bool:
		*f = Set(strconv.FormatBool(v))
	default:
		return fmt.Errorf("input: unsupported JSON value %s", data)
	}
	return nil
}

// Values is a lookup over one source of raw fields.
type Values interface {
	Get(key string) Field
}

// binder is implemented by every request schema.
type binder interface {
	bind(v Values)
}

type urlValues url.Values

func (u urlValues) Get(key string) Field {
	vs, ok := u[key]
	if !ok || len(vs) == 0 {
		return Field{}
	}
	return Set(vs[0])
}

type jsonValues map[string]Field

func (j jsonValues) Get(key string) Field {
	return j[key]
}

// Query wraps a query string as Values.
func Query(q url.Values) Values {
	return urlValues(q)
}

// DecodeBody reads the request body into dst.
//
// application/json bodies are decoded as an object of fields; everything
// else (urlencoded or multipart forms, or no content type at all) goes
// through r.ParseForm, which is what HTML forms send. An empty body decodes
// to all-absent fields.
//
// Bodies over MaxBodyBytes fail with ErrBadBody, and w is told to close
// the connection after the reply.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst binder) error {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		fields := jsonValues{}
		if r.Body != nil {
			err := json.NewDecoder(r.Body).Decode(&fields)
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: %v", ErrBadBody, err)
			}
		}
		dst.bind(fields)
		return nil
	}

	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
			return fmt.Errorf("%w: %v", ErrBadBody, err)
		}
	} else if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	dst.bind(urlValues(r.PostForm))
	return nil
}

// DecodeQuery reads the URL query string into dst.
func DecodeQuery(r *http.Request, dst binder) {
	dst.bind(urlValues(r.URL.Query()))
}
