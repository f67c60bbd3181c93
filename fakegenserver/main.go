// fakegenserver is a local stand-in for the content-generation backend. It
// implements the generate API by synthesizing a reply that conforms to the
// posted response schema, which makes the slides service fully usable in
// development without model credentials.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	host := flag.String("h", "", "the host to listen on")
	port := flag.String("p", "9090", "the port to listen on")
	flag.Parse()

	addr := fmt.Sprintf("%s:%s", *host, *port)
	log.Println("Listening at", addr)

	s := newServer()
	s.setupRoutes()

	return http.ListenAndServe(addr, s.router)
}
