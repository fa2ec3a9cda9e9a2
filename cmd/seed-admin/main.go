// Seeds or updates an admin account.
// cmd/seed-admin/main.go
package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"desa-portal-api/config"
	"desa-portal-api/models"
	"desa-portal-api/utils"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "plaintext password to hash (required)")
	name := flag.String("name", "Administrator Desa", "display name")
	role := flag.String("role", models.RoleAdmin, "admin or superadmin")
	flag.Parse()

	if *password == "" {
		log.Fatal("Usage: seed-admin -username admin -password <secret> [-name ...] [-role ...]")
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}
	if *role != models.RoleAdmin && *role != models.RoleSuperadmin {
		log.Fatalf("Unknown role %q", *role)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	var user models.AdminUser
	err = config.DB.Where("username = ?", *username).First(&user).Error
	if err == nil {
		user.PasswordHash = hash
		user.Name = *name
		user.Role = *role
		if err := config.DB.Save(&user).Error; err != nil {
			log.Fatal("Failed to update admin:", err)
		}
		log.Printf("Updated admin %q", *username)
		return
	}

	user = models.AdminUser{
		Username:     *username,
		PasswordHash: hash,
		Name:         *name,
		Role:         *role,
		CreatedAt:    time.Now(),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}
	log.Printf("Created admin %q", *username)
}
