package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-sweep/internal/config"
)

func main() {
	if err := run("./config"); err != nil {
		log.Fatal(err)
	}
}

// run writes the sweep config schema into dir and a sample config next to it unless one exists.
func run(dir string) error {
	schemaPath := filepath.Join(dir, config.SchemaFileName)
	sampleConfigPath := filepath.Join(dir, strings.TrimSuffix(config.SchemaFileName, ".json")+".yaml")

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		return err
	}

	if err := generateSchemaFile(schemaPath); err != nil {
		return err
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	return generateSampleConfig(config.Default(), sampleConfigPath)
}

func generateSchemaFile(schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig never overwrites an existing file.
func generateSampleConfig(cfg config.SweepConfig, samplePath string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal sample config: %w", err)
	}

	if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}

func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return nil
}
