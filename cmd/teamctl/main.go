// teamctl manages the teams tables from the command line: list teams,
// create one, add or remove members.
//
// Usage:
//
//	teamctl list
//	teamctl create -name "Platform" -manager 1 [-desc "..."]
//	teamctl add -team 1 -user 2
//	teamctl remove -team 1 -user 2
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"kyri56xcaesar/task-tracker/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	confPath := fs.String("config", ".env", "path to the env config file")
	name := fs.String("name", "", "team name")
	desc := fs.String("desc", "", "team description")
	managerID := fs.Int64("manager", 0, "manager user id")
	teamID := fs.Int64("team", 0, "team id")
	userID := fs.Int64("user", 0, "user id")
	fs.Parse(args)

	ctx := context.Background()
	store.MustConnect(ctx, store.ConfigFromEnv(*confPath))
	defer store.Close()

	switch cmd {
	case "list":
		teams, err := store.ListTeams(ctx)
		if err != nil {
			log.Fatalf("failed to list teams: %v", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMANAGER\tMEMBERS\tCREATED")
		for _, t := range teams {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
				t.TeamID, t.Name, t.ManagerID, t.MemberCount, t.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()

	case "create":
		if *name == "" || *managerID <= 0 {
			log.Fatal("create requires -name and -manager")
		}
		mgr, err := store.GetUserByID(ctx, *managerID)
		if err != nil {
			log.Fatalf("manager %d not found: %v", *managerID, err)
		}
		if !mgr.IsManager() {
			log.Fatalf("user %s is not a manager", mgr.Username)
		}
		id, err := store.CreateTeam(ctx, *name, *desc, *managerID)
		if err != nil {
			log.Fatalf("failed to create team: %v", err)
		}
		fmt.Printf("team %q created with id %d\n", *name, id)

	case "add":
		if *teamID <= 0 || *userID <= 0 {
			log.Fatal("add requires -team and -user")
		}
		if err := store.AddTeamMember(ctx, *teamID, *userID); err != nil {
			log.Fatalf("failed to add member: %v", err)
		}
		member, err := store.IsTeamMember(ctx, *teamID, *userID)
		if err != nil || !member {
			log.Fatalf("membership not confirmed: %v", err)
		}
		fmt.Printf("user %d added to team %d\n", *userID, *teamID)

	case "remove":
		if *teamID <= 0 || *userID <= 0 {
			log.Fatal("remove requires -team and -user")
		}
		if err := store.RemoveTeamMember(ctx, *teamID, *userID); err != nil {
			log.Fatalf("failed to remove member: %v", err)
		}
		fmt.Printf("user %d removed from team %d\n", *userID, *teamID)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: teamctl <list|create|add|remove> [flags]")
	os.Exit(2)
}
