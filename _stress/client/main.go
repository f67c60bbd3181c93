package main

import (
	"bytes"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/rahilansari261/ai-slides-sub000/_stress/fake"
)

func main() {
	target := flag.String("t", "http://localhost:8080/api/v1/layouts", "ingest endpoint to hammer")
	workers := flag.Int("c", 4, "concurrent callers")
	flag.Parse()

	for i := 1; i < *workers; i++ {
		go caller(*target)
	}
	caller(*target)
}

func caller(target string) {
	buf := &bytes.Buffer{}
	for {
		buf.Reset()
		call(buf, target)
	}
}

func call(buf *bytes.Buffer, target string) {
	body := map[string]string{"source": fake.Layout()}
	if err := json.NewEncoder(buf).Encode(&body); err != nil {
		panic(err)
	}

	req, err := http.NewRequest(http.MethodPost, target, buf)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if res != nil {
		defer res.Body.Close()
	}
	if err != nil {
		panic(err)
	}

	_, _ = io.Copy(io.Discard, res.Body)
	slog.Info("completed request", "status", res.StatusCode)

	time.Sleep(10 * time.Millisecond)
}
