package webapp

import (
	"context"
	"log"

	"kyri56xcaesar/task-tracker/internal/provision"
	"kyri56xcaesar/task-tracker/internal/store"
)

// seedDemoData creates a demo manager and two employees when the users table
// is empty. Guarded by DEMO_DATA; never runs against a populated database.
func seedDemoData(ctx context.Context) {
	n, err := store.CountUsers(ctx)
	if err != nil {
		log.Printf("demo seed: count failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	demo := []provision.Params{
		{
			Username: "manager", Email: "manager@company.com", Password: "password123",
			Firstname: "John", Lastname: "Manager", Role: store.RoleManager, Department: "Management",
		},
		{
			Username: "employee1", Email: "employee1@company.com", Password: "password123",
			Firstname: "Alice", Lastname: "Smith", Department: "Development",
		},
		{
			Username: "employee2", Email: "employee2@company.com", Password: "password123",
			Firstname: "Bob", Lastname: "Johnson", Department: "Development",
		},
	}

	for _, p := range demo {
		if _, err := provision.CreateUser(ctx, p); err != nil {
			log.Printf("demo seed: create %s failed: %v", p.Username, err)
			return
		}
	}
	log.Println("demo seed: created manager/employee1/employee2 (password123)")
}
