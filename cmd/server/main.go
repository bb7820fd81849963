package main

import (
	"os"
)

// @title AthleTrack API
// @version 1.0
// @description Personal fitness tracking: exercises, workouts with sets, body metrics and personal records.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
