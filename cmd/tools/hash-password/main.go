package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hearthloaf/hearthloaf/internal/auth"
)

func main() {
	skipCheck := flag.Bool("skip-strength-check", false, "hash the password even if it is weak")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: hash-password [-skip-strength-check] <password>")
	}
	password := flag.Arg(0)

	if !*skipCheck {
		if err := auth.ValidatePasswordStrength(password); err != nil {
			log.Fatalf("Password rejected: %v", err)
		}
	}

	hash, err := auth.NewPasswordHasher().HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
