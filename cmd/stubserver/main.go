package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"painters-telegraph/internal/stubserver"
)

func main() {
	addr := ":9119"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	user := flag.String("user", "", "user_id credential handed out by /api/github_login")
	name := flag.String("name", "Player One", "display name for -user")
	flag.Parse()

	var opts []stubserver.Option
	if *user != "" {
		opts = append(opts, stubserver.WithUser(*user, *name), stubserver.WithLoginUser(*user))
	}
	srv := stubserver.New(opts...)
	log.Printf("telegraph stub server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
