package router

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithErrorHolder(ctx)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		resp, err := func() (*Response, error) {
			if r.Method != method {
				return nil, errorx.New(errorx.BadRequest, "Not supported method %s", r.Method)
			}

			for _, m := range router.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(r, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Invalid request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return nil, err
			}

			for _, m := range router.afters {
				newCtx, err := m(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			return resp, nil
		}()

		if err != nil {
			xcontext.SetError(ctx, err)
			if werr := writeJSON(w, newErrorResponse(err)); werr != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", werr)
			}
			return
		}

		if werr := writeJSON(w, newResponse(resp)); werr != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", werr)
		}
	}
}

// bindRequest fills the request struct from the query string for GET, or from
// the JSON body for POST. Multipart bodies are left for the handler to parse.
func bindRequest(r *http.Request, method string, req any) error {
	if method == http.MethodGet {
		return bindQuery(r, req)
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	if len(body) == 0 {
		return nil
	}

	return json.Unmarshal(body, req)
}

func bindQuery(r *http.Request, req any) error {
	values := map[string]any{}
	for key, value := range r.URL.Query() {
		if len(value) == 0 {
			continue
		}

		values[key] = value[0]
	}

	b, err := json.Marshal(normalizeQueryValues(req, values))
	if err != nil {
		return err
	}

	return json.Unmarshal(b, req)
}

// normalizeQueryValues converts raw query strings into the scalar types the
// request struct expects, based on its json tags.
func normalizeQueryValues(req any, values map[string]any) map[string]any {
	kinds := fieldKindsByJSONTag(req)
	for key, value := range values {
		s, ok := value.(string)
		if !ok {
			continue
		}

		switch kinds[key] {
		case "int":
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				values[key] = n
			}
		case "uint":
			if n, err := strconv.ParseUint(s, 10, 64); err == nil {
				values[key] = n
			}
		case "float":
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				values[key] = f
			}
		case "bool":
			if b, err := strconv.ParseBool(s); err == nil {
				values[key] = b
			}
		}
	}

	return values
}
