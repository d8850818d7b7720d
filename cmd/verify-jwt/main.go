// Утилита проверки JWT токена тем же секретом, что используют сервисы.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"wastehub/internal/shared/auth"
	"wastehub/internal/shared/config"
)

func main() {
	token := flag.String("token", "", "JWT token to verify")
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "Error: -token flag is required")
		fmt.Fprintln(os.Stderr, "Usage: go run cmd/verify-jwt/main.go -token=<JWT_TOKEN>")
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	jwtService := auth.NewJWTService(cfg.JWT)

	claims, err := jwtService.ValidateToken(*token)
	if err != nil {
		fmt.Printf("token validation FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("token is valid")
	fmt.Printf("  user id: %s\n", claims.UserID)
	fmt.Printf("  email:   %s\n", claims.Email)
	fmt.Printf("  role:    %s\n", claims.Role)
	fmt.Printf("  issuer:  %s\n", claims.Issuer)
	fmt.Printf("  expires: %s\n", claims.ExpiresAt.Time)
}
