package middleware

import (
	"bytes"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/raoc-coder/eventraisehub/pkg/cache"
	"github.com/redis/go-redis/v9"
)

type cachedResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

type bufferedWriter struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache serves anonymous GETs from Redis. Authenticated requests
// bypass it because owners may see unpublished data. A nil client disables
// caching.
func ResponseCache(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if rdb == nil || req.Method != http.MethodGet || req.Header.Get(echo.HeaderAuthorization) != "" {
				return next(c)
			}

			key := cache.ListKey(c.Path(), req.URL.RawQuery)
			if id := c.Param("id"); id != "" {
				key = cache.ItemKey(id, c.Path(), req.URL.RawQuery)
			}
			ctx := req.Context()

			if b, err := rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
				var hit cachedResponse
				if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
					for k, vals := range hit.Header {
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(hit.Status)
					_, err := c.Response().Write(hit.Body)
					return err
				}
			}

			buf := &bytes.Buffer{}
			res := c.Response()
			res.Header().Set("X-Cache", "MISS")
			res.Writer = &bufferedWriter{ResponseWriter: res.Writer, buf: buf}

			if err := next(c); err != nil {
				return err
			}

			if res.Status >= 200 && res.Status < 300 {
				header := res.Header().Clone()
				header.Del("X-Cache")
				var out bytes.Buffer
				if err := gob.NewEncoder(&out).Encode(cachedResponse{Status: res.Status, Header: header, Body: buf.Bytes()}); err == nil {
					_ = rdb.Set(ctx, key, out.Bytes(), ttl).Err()
				}
			}
			return nil
		}
	}
}
