// Command admintool prepares admin credentials for the storefront: a bcrypt
// hash for ADMIN_PASSWORD_HASH, or an admin access token for the token mode.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/storefront/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "hash":
		err = hash()
	case "token":
		err = token(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "admintool:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admintool hash < password")
	fmt.Fprintln(os.Stderr, "       admintool token -email admin@example.com [-ttl 12h]  (secret from ADMIN_TOKEN_SECRET)")
}

func hash() error {
	password, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && password == "" {
		return fmt.Errorf("read password: %w", err)
	}
	h, err := auth.HashPassword(strings.TrimRight(password, "\r\n"))
	if err != nil {
		return err
	}
	fmt.Println(h)
	return nil
}

func token(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	email := fs.String("email", "", "admin e-mail, used as the admin username")
	ttl := fs.Duration("ttl", 12*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	secret := os.Getenv("ADMIN_TOKEN_SECRET")
	if len(secret) < 32 {
		return fmt.Errorf("ADMIN_TOKEN_SECRET must be at least 32 characters long")
	}
	if *email == "" {
		return fmt.Errorf("-email is required")
	}

	t, err := auth.NewTokenService(secret).Issue(*email, *email, auth.RoleAdmin, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(t)
	return nil
}
