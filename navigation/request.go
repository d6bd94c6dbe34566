package navigation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

const (
	contentTypeForm      = "application/x-www-form-urlencoded"
	contentTypeMultipart = "multipart/form-data"
)

// tagPartial marks u as a partial fetch.
func tagPartial(u *url.URL) {
	q := u.Query()
	q.Set(PartialQueryParam, "true")
	u.RawQuery = q.Encode()
}

// buildFormRequest builds the request for a form submission. GET requests
// carry the form data as the query string, replacing the action's query.
// POST requests carry it as the body, urlencoded unless enctype asks for
// multipart.
func buildFormRequest(ctx context.Context, method string, action *url.URL, data url.Values, enctype string) (*http.Request, error) {
	u := *action
	u.Fragment = ""

	if method == http.MethodGet {
		u.RawQuery = data.Encode()
		tagPartial(&u)
		return http.NewRequestWithContext(ctx, method, u.String(), nil)
	}

	var (
		body        io.Reader
		contentType string
	)
	if enctype == contentTypeMultipart {
		buf, ct, err := encodeMultipart(data)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	} else {
		body, contentType = strings.NewReader(data.Encode()), contentTypeForm
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	return req, nil
}

func encodeMultipart(data url.Values) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range data[k] {
			if err := mw.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("navigation: multipart field %q: %w", k, err)
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("navigation: multipart close: %w", err)
	}

	return buf, mw.FormDataContentType(), nil
}
