// viewusers prints the user table and per-role counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"kyri56xcaesar/task-tracker/internal/store"
)

func main() {
	confPath := flag.String("config", ".env", "path to the env config file")
	flag.Parse()

	ctx := context.Background()
	store.MustConnect(ctx, store.ConfigFromEnv(*confPath))
	defer store.Close()

	users, err := store.ListUsers(ctx, false)
	if err != nil {
		log.Fatalf("failed to list users: %v", err)
	}

	fmt.Println("Task Tracker - Users")
	fmt.Println(strings.Repeat("=", 50))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL\tROLE\tDEPARTMENT\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%v\n",
			u.ID, u.Username, u.FullName(), u.Email, u.Role, u.Department, u.IsActive)
	}
	w.Flush()

	var managers, employees, active int
	for _, u := range users {
		if u.IsManager() {
			managers++
		} else {
			employees++
		}
		if u.IsActive {
			active++
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("total: %d (%d managers, %d employees, %d active)\n",
		len(users), managers, employees, active)
}
