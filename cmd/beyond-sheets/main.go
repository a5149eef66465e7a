// Package main is the beyond-sheets CLI: it archives D&D Beyond
// campaign characters and renders them as console character sheets.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/beyond-sheets/internal/clients/beyond"
	"github.com/KirkDiggler/beyond-sheets/internal/config"
	"github.com/KirkDiggler/beyond-sheets/internal/repositories/documents"
)

var rootCmd = &cobra.Command{
	Use:   "beyond-sheets",
	Short: "Archive D&D Beyond campaigns and view character sheets",
	Long:  "beyond-sheets scrapes the characters in your D&D Beyond campaigns into a local archive, then renders sheets, spell lists, features, and inventories from the archive without going back to the API.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runRoot,
}

var archiveDir string

func init() {
	rootCmd.PersistentFlags().StringVar(&archiveDir, "dir", documents.DefaultArchiveDir, "archive directory for scraped characters")
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// archiveDirFor resolves the archive directory. The --dir flag wins over
// the ARCHIVE_DIR environment variable.
func archiveDirFor(cfg *config.Config) string {
	if rootCmd.PersistentFlags().Changed("dir") {
		return archiveDir
	}
	return cfg.Archive.Dir
}

// newRepository selects the document store. REDIS_URL picks Redis when
// the server answers a ping, anything else falls back to the file
// archive. The returned cleanup closes whatever was opened.
func newRepository(cfg *config.Config) (documents.Repository, func(), error) {
	if redisURL := cfg.Redis.URL; redisURL != "" {
		log.Printf("Connecting to Redis at: %s", redisURL)

		opts, parseErr := redis.ParseURL(redisURL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to the file archive")
		} else {
			redisClient := redis.NewClient(opts)

			// Test connection
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(ctx).Err()
			cancel()

			if pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to the file archive")
			} else {
				log.Println("Successfully connected to Redis")

				repo, err := documents.NewRedisRepository(&documents.RedisRepoConfig{
					Client: redisClient,
				})
				if err != nil {
					return nil, nil, fmt.Errorf("failed to create Redis repository: %w", err)
				}

				log.Println("Using Redis for persistence")
				cleanup := func() {
					if closeErr := redisClient.Close(); closeErr != nil {
						log.Printf("Failed to close Redis connection: %v", closeErr)
					}
				}
				return repo, cleanup, nil
			}
		}
	}

	repo, err := documents.NewFileRepository(&documents.FileRepoConfig{
		Dir: archiveDirFor(cfg),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file repository: %w", err)
	}
	return repo, func() {}, nil
}

// newBeyondClient builds the D&D Beyond client. Callers gate on the
// session cookie first so a missing one prints the setup help instead
// of a bare error.
func newBeyondClient(cfg *config.Config) (beyond.Client, error) {
	client, err := beyond.New(&beyond.Config{
		HttpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		Session:             cfg.Beyond.Session,
		BaseURL:             cfg.Beyond.BaseURL,
		AuthURL:             cfg.Beyond.AuthURL,
		CharacterServiceURL: cfg.Beyond.CharacterServiceURL,
		UserAgent:           cfg.Beyond.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D Beyond client: %w", err)
	}
	return client, nil
}

func printSessionHelp() {
	fmt.Println("ERROR: DNDBEYOND_SESSION environment variable not set")
	fmt.Println("\nTo get your cookie:")
	fmt.Println("1. Log in to dndbeyond.com")
	fmt.Println("2. Open browser DevTools (F12)")
	fmt.Println("3. Go to Application/Storage > Cookies > https://www.dndbeyond.com")
	fmt.Println("4. Find 'CobaltSession' and copy its value")
	fmt.Println("5. Set the environment variable:")
	fmt.Println("   export DNDBEYOND_SESSION='your_session_cookie_here'")
}
