// Command sessiontoken mints sso_attributes session cookies for manual testing.
//
// Usage:
//
//	go run ./cmd/sessiontoken -key session-key.pem -generate
//	go run ./cmd/sessiontoken -key session-key.pem -subject bob -attr uid=123 -attr user=bob
//
// The printed name=value pair can be passed to curl with --cookie.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	caddyssoattrs "github.com/philiph/caddy-sso-attrs"
)

// attrFlags collects repeated -attr name=value flags. A repeated name
// becomes a multi-valued attribute.
type attrFlags map[string][]string

func (a attrFlags) String() string {
	parts := make([]string, 0, len(a))
	for k, vs := range a {
		parts = append(parts, k+"="+strings.Join(vs, ","))
	}
	return strings.Join(parts, " ")
}

func (a attrFlags) Set(v string) error {
	name, value, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return fmt.Errorf("attribute must be name=value, got %q", v)
	}
	a[name] = append(a[name], value)
	return nil
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("sessiontoken: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sessiontoken", flag.ContinueOnError)
	keyFile := fs.String("key", "", "Path to the RSA private key (PEM) used as key_file")
	generate := fs.Bool("generate", false, "Generate a new key at -key and exit")
	subject := fs.String("subject", "", "Principal subject")
	issuer := fs.String("issuer", "", "Principal issuer")
	cookieName := fs.String("cookie", "sso_session", "Session cookie name")
	duration := fs.Duration("duration", 8*time.Hour, "Session lifetime")
	attrs := attrFlags{}
	fs.Var(attrs, "attr", "Attribute as name=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *keyFile == "" {
		return errors.New("-key is required")
	}

	if *generate {
		if err := writeNewKey(*keyFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", *keyFile)
		return nil
	}

	key, err := caddyssoattrs.LoadPrivateKey(*keyFile)
	if err != nil {
		return err
	}

	store := caddyssoattrs.NewCookieStore(key, *duration)
	token, err := store.Create(&caddyssoattrs.Principal{
		Subject:    *subject,
		Issuer:     *issuer,
		Attributes: caddyssoattrs.AttributesFromMulti(attrs),
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	fmt.Fprintf(out, "%s=%s\n", *cookieName, token)
	return nil
}

// writeNewKey generates a 2048-bit RSA key and writes it as PKCS8 PEM.
// An existing file is never overwritten.
func writeNewKey(path string) error {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	defer f.Close()

	if err := pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: der}); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	return f.Close()
}
