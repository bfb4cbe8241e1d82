package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"innovation-registry-api/storage"
)

// Store is the shared object-store handle, owned by the process bootstrap.
var Store storage.ObjectStore

// StorageTimeout bounds each individual object-store call.
var StorageTimeout = 30 * time.Second

func InitStorage() {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "innovation-registry"
	}
	useSSL := os.Getenv("STORAGE_USE_SSL") == "true"

	if secs, _ := strconv.Atoi(os.Getenv("STORAGE_TIMEOUT_SECONDS")); secs > 0 {
		StorageTimeout = time.Duration(secs) * time.Second
	}

	store, err := storage.NewMinioStore(
		endpoint,
		os.Getenv("STORAGE_ACCESS_KEY"),
		os.Getenv("STORAGE_SECRET_KEY"),
		bucket,
		useSSL,
	)
	if err != nil {
		log.Fatal("Failed to connect to object storage:", err)
	}

	Store = store
	log.Println("Object storage connected successfully")
}
