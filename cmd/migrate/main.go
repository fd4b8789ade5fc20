package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"ticket-booking/internal/config"
)

func main() {
	envFlag := flag.String("env", "dev", "Environment (dev, test, prod)")
	envFileFlag := flag.String("env-file", "", "Path to .env file")
	dirFlag := flag.String("dir", "migrations", "Directory holding *.sql migration files")
	flag.Parse()

	loadEnv(*envFlag, *envFileFlag)

	cfg := config.Load()
	if cfg.Database.Driver != "mysql" {
		log.Fatalf("Migrations target MySQL only, STORE_DRIVER is %q", cfg.Database.Driver)
	}

	dsn, err := migrationDSN(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Invalid DATABASE_URL: %v", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("Connected to database successfully")

	files, err := migrationFiles(*dirFlag)
	if err != nil {
		log.Fatalf("Failed to list migrations: %v", err)
	}

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read migration file: %v", err)
		}

		fmt.Printf("Executing migration from %s\n", file)
		if _, err := db.Exec(string(migrationSQL)); err != nil {
			log.Fatalf("Failed to execute migration %s: %v", file, err)
		}
	}

	fmt.Printf("Applied %d migration(s) successfully\n", len(files))
}

// migrationDSN enables multi-statement execution so a file can hold several
// statements.
func migrationDSN(url string) (string, error) {
	dsnCfg, err := mysql.ParseDSN(url)
	if err != nil {
		return "", err
	}
	dsnCfg.MultiStatements = true
	dsnCfg.ParseTime = true
	return dsnCfg.FormatDSN(), nil
}

func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func loadEnv(env string, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err == nil {
			fmt.Printf("Loaded environment from %s\n", envFile)
			return
		}
	}

	envSpecificFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envSpecificFile); err == nil {
		fmt.Printf("Loaded environment from %s\n", envSpecificFile)
		return
	}

	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
		return
	}

	fmt.Println("No .env file found, using default or system environment variables")
}
