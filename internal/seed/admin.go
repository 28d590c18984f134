package seed

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"buzzwordz-backend/internal/config"
	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/pkg/logger"
)

// EnsureAdminUser creates the bootstrap admin account from configuration.
// Nothing happens when credentials are unset or an admin already exists.
func EnsureAdminUser(userRepo repository.UserRepository, cfg *config.Config) {
	if cfg == nil {
		return
	}

	email := strings.TrimSpace(cfg.AdminEmail)
	password := cfg.AdminPassword
	if email == "" || password == "" {
		logger.Warn("Admin credentials not configured, skipping admin bootstrap", nil)
		return
	}

	count, err := userRepo.CountAdmins()
	if err != nil {
		logger.Error(err, "Failed to count admin users", nil)
		return
	}
	if count > 0 {
		return
	}

	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" {
		username = "admin"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(err, "Failed to hash admin password", nil)
		return
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}

	if err := userRepo.Create(user); err != nil {
		logger.Error(err, "Failed to create admin user", map[string]interface{}{"email": email})
		return
	}

	logger.Info("Ensured admin user", map[string]interface{}{"username": username})
}
