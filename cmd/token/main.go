// Command token mints an access token for local development.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id (required)")
	employeeID := flag.String("employee", "", "employee id bound to the token")
	role := flag.String("role", string(auth.RoleEmployee), "role: employee or admin")
	flag.Parse()

	if *userID == "" || !auth.Role(*role).Valid() {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	var emp *string
	if *employeeID != "" {
		emp = employeeID
	}

	svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := svc.GenerateAccessToken(*userID, emp, auth.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %d\n", expiresAt)
}
