package service

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// readBody returns the request body, decoding gzip and deflate transfer
// encodings. Layout sources are big enough that clients compress them;
// encodings we cannot decode are an error, but an unknown token is treated
// as identity so odd proxies do not break uploads.
func readBody(r *http.Request) ([]byte, error) {
	d, err := newEncodedReader(r.Header.Get("Content-Encoding"), r.Body)
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	bs, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	if err := d.Close(); err != nil {
		slog.Warn("could not close request body reader", "err", err)
	}

	return bs, nil
}

func newEncodedReader(enc string, r io.ReadCloser) (io.ReadCloser, error) {
	switch enc {
	case "":
		return r, nil
	case "gzip":
		return gzip.NewReader(r)
	case "deflate":
		return zlib.NewReader(r)
	case "compress", "br":
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	default:
		slog.Warn("unknown encoding", "enc", enc)
		return r, nil
	}
}
