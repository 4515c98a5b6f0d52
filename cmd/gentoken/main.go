package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// gentoken mints HS256 bearer tokens for local development
//
// Usage:
//
//	go run ./cmd/gentoken --new-secret
//	AUTH_JWT_SECRET=... go run ./cmd/gentoken --user alice
//
// The token is signed with AUTH_JWT_SECRET, the same secret the server verifies with
func main() {
	user := flag.String("user", "", "subject (user id) to put in the token")
	issuer := flag.String("issuer", os.Getenv("AUTH_JWT_ISSUER"), "issuer claim, optional")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	newSecret := flag.Bool("new-secret", false, "print a fresh random signing secret and exit")
	flag.Parse()

	if *newSecret {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("Failed to generate secret: %v", err)
		}
		fmt.Println("AUTH_JWT_SECRET=" + base64.RawURLEncoding.EncodeToString(buf))
		return
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET must be set")
	}
	if *user == "" {
		log.Fatal("--user is required")
	}

	now := time.Now()
	builder := jwt.NewBuilder().
		Subject(*user).
		IssuedAt(now).
		Expiration(now.Add(*ttl))
	if *issuer != "" {
		builder = builder.Issuer(*issuer)
	}

	tok, err := builder.Build()
	if err != nil {
		log.Fatalf("Failed to build token: %v", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(secret)))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(string(signed))
}
