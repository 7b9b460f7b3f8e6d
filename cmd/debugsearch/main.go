// debugsearch runs URL discovery for one query and prints the filtered
// candidates. Handy for checking a SearxNG deployment and the blocklist
// without running the whole pipeline.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"webanswer/internal/discover"
)

func main() {
	base := os.Getenv("SEARX_URL")
	if base == "" {
		base = "http://localhost:8888/search"
	}
	q := "IPL match today"
	if len(os.Args) > 1 {
		q = os.Args[1]
	}
	svc := &discover.Service{
		BaseURL:    base,
		APIKey:     os.Getenv("SEARX_KEY"),
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		UserAgent:  "debugsearch/1.0",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	urls := svc.Discover(ctx, q)
	fmt.Printf("query: %s\nurls: %d\n", q, len(urls))
	for i, u := range urls {
		fmt.Printf("%d. %s\n", i+1, u)
	}
}
