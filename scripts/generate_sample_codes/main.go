package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"discount-manager/internal/codes"
)

// Generates sample gzipped redeem-code files for exercising the bulk
// import endpoint locally.
func main() {
	dataDir := "data/codes"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := map[string][]string{
		"redeem-codes-1.gz": {
			"SUMMER2026",
			"WELCOME10",
			"VIP-GOLD",
			"LAUNCH50",
			"FRIENDS15",
		},
		"redeem-codes-2.gz": codes.Generate("BULK-", 200),
	}

	for filename, fileCodes := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createCodeFile(filePath, fileCodes); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d codes\n", filePath, len(fileCodes))
	}

	fmt.Println("\nSample redeem-code files created successfully!")
}

func createCodeFile(filePath string, fileCodes []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	defer gzWriter.Close()

	for _, code := range fileCodes {
		if _, err := fmt.Fprintln(gzWriter, code); err != nil {
			return fmt.Errorf("failed to write code: %w", err)
		}
	}

	return nil
}
