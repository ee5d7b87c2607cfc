// Command devtoken mints a bearer token for local testing of the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"clubhub/config"
	"clubhub/internal/adapters/auth"
	"clubhub/internal/domain"
)

func main() {
	userID := flag.String("user", "", "user id (token subject)")
	email := flag.String("email", "", "user email")
	name := flag.String("name", "", "display name")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "usage: devtoken -user <id> -email <address> [-name <name>] [-ttl 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(domain.Identity{UserID: *userID, Email: *email, Name: *name}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
