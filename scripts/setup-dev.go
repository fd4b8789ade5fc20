package main

import (
	"fmt"
	"os"
	"os/exec"
)

// Services the booking API can use locally. MySQL backs the store, Redis the
// listing cache and Kafka the booking events.
var services = []string{"mysql", "redis", "kafka"}

func main() {
	fmt.Println("Setting up ticket booking development environment")

	if err := checkDocker(); err != nil {
		fmt.Printf("Docker issue detected: %v\n", err)
		fmt.Println("You can still run without containers:")
		fmt.Println("  STORE_DRIVER=memory GATEWAY_PROVIDER=mock go run .")
		return
	}

	fmt.Println("Docker is running")
	fmt.Printf("Starting services: %v\n", services)

	cmd := exec.Command("docker", append([]string{"compose", "up", "-d"}, services...)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("Failed to start services: %v\n", err)
		fmt.Println("Try: STORE_DRIVER=sqlite3 DATABASE_URL=file:bookings.db go run .")
		return
	}

	fmt.Println("Services started successfully!")
	fmt.Println("Apply the schema: go run ./cmd/migrate")
	fmt.Println("Then run: KAFKA_ENABLED=true REDIS_ADDR=localhost:6379 go run .")
}

func checkDocker() error {
	return exec.Command("docker", "info").Run()
}
