// bulkadduser creates users from a JSON file, skipping (not aborting on)
// duplicates so reruns are safe.
//
// Input format:
//
//	[
//	  {"username": "...", "email": "...", "first_name": "...", "last_name": "...",
//	   "role": "employee", "department": "QA", "password": "..."}
//	]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"kyri56xcaesar/task-tracker/internal/provision"
	"kyri56xcaesar/task-tracker/internal/store"
)

type userEntry struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Firstname  string `json:"first_name"`
	Lastname   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Password   string `json:"password"`
}

func main() {
	confPath := flag.String("config", ".env", "path to the env config file")
	usersPath := flag.String("users", "users.json", "path to the users JSON file")
	flag.Parse()

	b, err := os.ReadFile(*usersPath)
	if err != nil {
		log.Fatalf("failed to read users file: %v", err)
	}

	var entries []userEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		log.Fatalf("failed to parse users file: %v", err)
	}

	ctx := context.Background()
	store.MustConnect(ctx, store.ConfigFromEnv(*confPath))
	defer store.Close()

	fmt.Println("Task Tracker - Bulk User Creation")
	fmt.Println("========================================")

	// one bad record must not abort the rest of the batch
	var created, skipped, failed int
	for _, e := range entries {
		_, err := provision.CreateUser(ctx, provision.Params{
			Username:   e.Username,
			Email:      e.Email,
			Password:   e.Password,
			Firstname:  e.Firstname,
			Lastname:   e.Lastname,
			Role:       e.Role,
			Department: e.Department,
		})
		switch {
		case err == nil:
			created++
			fmt.Printf("created %s\n", e.Username)
		case errors.Is(err, provision.ErrDuplicateUsername), errors.Is(err, provision.ErrDuplicateEmail):
			skipped++
			fmt.Printf("skipped %s: %v\n", e.Username, err)
		default:
			failed++
			fmt.Printf("failed %s: %v\n", e.Username, err)
		}
	}

	fmt.Printf("\ndone: %d created, %d skipped, %d failed\n", created, skipped, failed)
}
