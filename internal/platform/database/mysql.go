// Package database provisions database-level resources that the cloud API
// does not manage, currently the read-only MySQL user the SQL agent
// connects as.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
)

// AdminConfig holds the administrator connection used for user provisioning.
type AdminConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Validate checks the connection fields are present.
func (c AdminConfig) Validate() error {
	if c.Host == "" || c.Port == "" || c.Name == "" || c.User == "" {
		return fmt.Errorf("database admin configuration is incomplete (need host, port, name, and user)")
	}
	return nil
}

// UserManager provisions database users.
type UserManager interface {
	// CreateReadOnlyUser creates (or recreates) a user with SELECT-only
	// access to the admin connection's database.
	CreateReadOnlyUser(ctx context.Context, admin AdminConfig, user, password string) error
}

// MySQL implements UserManager against a MySQL server.
type MySQL struct{}

var _ UserManager = MySQL{}

// MySQL DDL takes no placeholders, so interpolated identifiers and the
// generated password are restricted to characters that cannot break out of
// their quoting.
var (
	identRe    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	passwordRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// CreateReadOnlyUser implements UserManager. Existing users with the same
// name are dropped first so repeated deployments converge on the generated
// password.
func (MySQL) CreateReadOnlyUser(ctx context.Context, admin AdminConfig, user, password string) error {
	if err := admin.Validate(); err != nil {
		return err
	}
	if !identRe.MatchString(user) || !identRe.MatchString(admin.Name) {
		return fmt.Errorf("database and user names may only contain letters, digits, and underscores")
	}
	if !passwordRe.MatchString(password) {
		return fmt.Errorf("generated password contains unsupported characters")
	}

	db, err := sql.Open("mysql", admin.dsn())
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer db.Close()

	statements := []string{
		fmt.Sprintf("DROP USER IF EXISTS '%s'@'%%'", user),
		fmt.Sprintf("DROP USER IF EXISTS '%s'@'localhost'", user),
		fmt.Sprintf("CREATE USER '%s'@'%%' IDENTIFIED BY '%s'", user, password),
		fmt.Sprintf("CREATE USER '%s'@'localhost' IDENTIFIED BY '%s'", user, password),
		fmt.Sprintf("GRANT SELECT ON %s.* TO '%s'@'%%'", admin.Name, user),
		fmt.Sprintf("GRANT SELECT ON %s.* TO '%s'@'localhost'", admin.Name, user),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to provision read-only user %s: %w", user, err)
		}
	}
	return nil
}

func (c AdminConfig) dsn() string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%s", c.Host, c.Port)
	cfg.DBName = c.Name
	cfg.User = c.User
	cfg.Passwd = c.Password
	return cfg.FormatDSN()
}
