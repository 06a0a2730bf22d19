package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/devgateway"
)

// Admin tooling for the development gateway database. The production site
// manages its admin accounts on the hosted platform instead.
func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	email := addUserCmd.String("email", "", "Email for the new admin user")
	password := addUserCmd.String("password", "", "Password for the new admin user")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*email, *password)
	default:
		fmt.Println("expected 'add-user' subcommand")
		os.Exit(1)
	}
}

func createUser(email, password string) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./gateway.db"
	}

	store, err := devgateway.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	// Ensure tables exist if running cli before the gateway
	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := store.CreateUser(email, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Admin user '%s' created successfully.\n", email)
}
