package main

import (
	"fmt"
	"log"
	"os"

	"appointme.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

// resolvePassword prefers the first argument, then $HASH_GEN_PASSWORD.
func resolvePassword(args []string) (string, error) {
	password := os.Getenv("HASH_GEN_PASSWORD")
	if len(args) > 0 {
		password = args[0]
	}
	if len(password) < crypto.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", crypto.MinPasswordLength)
	}
	return password, nil
}

func generateHash(password string) (string, error) {
	return crypto.HashPassword(password)
}

func main() {
	password, err := resolvePassword(os.Args[1:])
	if err != nil {
		fatalfFn("Invalid password: %v", err)
		return
	}

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	if !crypto.CheckPassword(password, hash) {
		fatalfFn("Generated hash does not verify")
		return
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
