package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the process-level settings, read from the environment with a
// .env fallback for local development.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string
	SynonymsFile   string
}

// Load reads configuration from the environment. Missing .env is not an
// error; missing DATABASE_URL is caught later by the pool constructor.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ServerPort:     getenv("SERVER_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		SynonymsFile:   os.Getenv("SYNONYMS_FILE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// synonymsFile is the on-disk shape of a header synonym override file:
//
//	synonyms:
//	  customerName: ["debtor", "sold to"]
//	  price: ["net price"]
type synonymsFile struct {
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadSynonyms reads extra header spellings from a YAML file. Entries extend
// the built-in lists; they never replace or reorder them, so the default
// match priority stays intact.
func LoadSynonyms(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonyms file: %w", err)
	}
	var f synonymsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse synonyms file: %w", err)
	}
	return f.Synonyms, nil
}
