// adduser is the interactive provisioning tool: it prompts for the user
// fields and runs them through the same validation path as the admin route.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"kyri56xcaesar/task-tracker/internal/provision"
	"kyri56xcaesar/task-tracker/internal/store"
)

func main() {
	confPath := flag.String("config", ".env", "path to the env config file")
	flag.Parse()

	ctx := context.Background()
	store.MustConnect(ctx, store.ConfigFromEnv(*confPath))
	defer store.Close()

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Task Tracker - Add New User")
	fmt.Println(strings.Repeat("=", 50))

	in := bufio.NewReader(os.Stdin)

	p := provision.Params{
		Firstname: prompt(in, "First Name: "),
		Lastname:  prompt(in, "Last Name: "),
		Username:  prompt(in, "Username: "),
		Email:     prompt(in, "Email: "),
	}

	fmt.Println("\nRole options:")
	fmt.Println("1. Employee")
	fmt.Println("2. Manager")
	if prompt(in, "Select role (1 or 2): ") == "2" {
		p.Role = store.RoleManager
	} else {
		p.Role = store.RoleEmployee
	}

	p.Department = prompt(in, "Department (optional): ")
	p.Password = prompt(in, "Password (min 6 characters): ")

	u, err := provision.CreateUser(ctx, p)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fmt.Printf("\nUser %s (%s, %s) created with id %d\n", u.Username, u.FullName(), u.Role, u.ID)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
