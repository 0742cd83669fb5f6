// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

// compressedContentTypes are gzipped on the way out when the client accepts it.
var compressedContentTypes = []string{"application/json", "text/plain"}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGZip compresses responses through chi and transparently inflates
// request bodies sent with "Content-Encoding: gzip".
func withGZip(next http.Handler) http.Handler {
	return middleware.Compress(gzip.DefaultCompression, compressedContentTypes...)(gunzipBody(next))
}

func gunzipBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") || r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		zr := gzipReaderPool.Get().(*gzip.Reader)
		if err := zr.Reset(r.Body); err != nil {
			gzipReaderPool.Put(zr)
			writeError(w, r, ErrInvalidJSON, "invalid gzip request body")
			return
		}

		r.Body = &pooledGzipBody{Reader: zr, source: r.Body}
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}

// pooledGzipBody returns its reader to the pool on Close.
type pooledGzipBody struct {
	*gzip.Reader
	source io.Closer
	once   sync.Once
}

func (b *pooledGzipBody) Close() error {
	var err error
	b.once.Do(func() {
		b.Reader.Close()
		gzipReaderPool.Put(b.Reader)
		err = b.source.Close()
	})
	return err
}
