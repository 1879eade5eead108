package params

import (
	"fmt"

	"github.com/joho/godotenv"
)

// ParseEnvFile parses flag file content in .env format.
//
// Parsing is delegated to godotenv: comments, blank lines, quoted values,
// "export" prefixes and ${VAR} references to earlier keys are supported.
func ParseEnvFile(content []byte) (map[string]string, error) {
	result, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, fmt.Errorf("invalid env file: %w", err)
	}

	if _, ok := result[""]; ok {
		return nil, fmt.Errorf("invalid env file: empty key")
	}

	return result, nil
}
