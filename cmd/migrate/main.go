package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"estate-access-service/internal/config"
	"estate-access-service/internal/domain/accesslog"
	"estate-access-service/internal/domain/membership"
	"estate-access-service/internal/domain/payment"
	"estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/user"
	"estate-access-service/internal/domain/visitor"
	"estate-access-service/internal/infrastructure/db"
)

func openDB() (*gorm.DB, error) {
	cfg := config.Load()
	return db.OpenGorm(cfg.MySQLDSN())
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := openDB()
			if err != nil {
				return err
			}
			if err := gdb.AutoMigrate(
				&user.User{},
				&membership.Request{},
				&resident.Resident{},
				&payment.Payment{},
				&payment.VerifiedPayment{},
				&visitor.Pass{},
				&accesslog.Entry{},
				&accesslog.GateOverride{},
			); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Println("schema up to date")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the bootstrap admin user if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			gdb, err := openDB()
			if err != nil {
				return err
			}

			var existing user.User
			err = gdb.Where("email = ?", email).First(&existing).Error
			if err == nil {
				log.Printf("admin %s already exists, nothing to do", email)
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u := &user.User{
				Email:        email,
				PasswordHash: string(hash),
				FullName:     name,
				Role:         user.RoleAdmin,
			}
			if err := gdb.Create(u).Error; err != nil {
				return err
			}
			log.Printf("admin %s created (id %d)", email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin login email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	return cmd
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Estate access database tool",
	}
	rootCmd.AddCommand(upCmd(), seedAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
