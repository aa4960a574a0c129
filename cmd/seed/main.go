// Command seed loads a set of demo members with starting point balances.
// Existing members (matched by email) are left untouched.
package main

import (
	"log"
	"time"

	"pointbank/internal/config"
	"pointbank/internal/models"
	"pointbank/internal/repositories"
)

var demoUsers = []models.User{
	{FirstName: "Alice", LastName: "Nakamura", Phone: "+15550100", Email: "alice@example.com", MembershipLevel: "Gold", Points: 1500},
	{FirstName: "Bob", LastName: "Okafor", Phone: "+15550101", Email: "bob@example.com", MembershipLevel: "Silver", Points: 750},
	{FirstName: "Carol", LastName: "Lindgren", Phone: "+15550102", Email: "carol@example.com", MembershipLevel: "Bronze", Points: 200},
}

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	for _, u := range demoUsers {
		var existing models.User
		if err := repositories.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			log.Printf("user %s already exists, skipping", u.Email)
			continue
		}

		u.MemberSince = time.Now().UTC()
		if err := repositories.DB.Create(&u).Error; err != nil {
			log.Fatalf("failed to create user %s: %v", u.Email, err)
		}
		log.Printf("created user %s with %d points", u.Email, u.Points)
	}

	log.Println("seed complete")
}
