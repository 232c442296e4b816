package main

import (
	"fmt"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	userEmail    string
	userName     string
	userRole     string
	userPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage staff accounts",
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userEmail == "" || userName == "" || userPassword == "" {
			return fmt.Errorf("--email, --name and --password are required")
		}
		if userRole != models.RoleTeacher && userRole != models.RoleReviewer && userRole != models.RoleAdmin {
			return fmt.Errorf("invalid role %q", userRole)
		}

		var existing models.User
		if err := database.DB.Where("email = ?", userEmail).First(&existing).Error; err == nil {
			return fmt.Errorf("user %s already exists", userEmail)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(userPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hashStr := string(hash)

		user := models.User{
			Email:        userEmail,
			Name:         userName,
			Role:         userRole,
			PasswordHash: &hashStr,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return err
		}

		fmt.Printf("Created %s account %s (%s)\n", user.Role, user.Email, user.ID)
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change a staff account's role",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userEmail == "" {
			return fmt.Errorf("--email is required")
		}
		if userRole != models.RoleTeacher && userRole != models.RoleReviewer && userRole != models.RoleAdmin {
			return fmt.Errorf("invalid role %q", userRole)
		}

		var user models.User
		if err := database.DB.Where("email = ?", userEmail).First(&user).Error; err != nil {
			return fmt.Errorf("user not found: %s", userEmail)
		}

		if user.Role == userRole {
			fmt.Printf("User %s already has role %s\n", user.Email, user.Role)
			return nil
		}

		user.Role = userRole
		if err := database.DB.Save(&user).Error; err != nil {
			return err
		}

		fmt.Printf("User %s is now %s\n", user.Email, user.Role)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		var users []models.User
		if err := database.DB.Order("email").Find(&users).Error; err != nil {
			return err
		}

		for _, u := range users {
			fmt.Printf("%-36s  %-10s  %-30s  %s\n", u.ID, u.Role, u.Email, u.Name)
		}
		fmt.Printf("%d accounts\n", len(users))
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	createUserCmd.Flags().StringVar(&userName, "name", "", "Display name")
	createUserCmd.Flags().StringVar(&userRole, "role", models.RoleTeacher, "Role: teacher, reviewer or admin")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "Initial password")

	setRoleCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	setRoleCmd.Flags().StringVar(&userRole, "role", "", "Role: teacher, reviewer or admin")

	usersCmd.AddCommand(createUserCmd)
	usersCmd.AddCommand(setRoleCmd)
	usersCmd.AddCommand(listUsersCmd)
}
