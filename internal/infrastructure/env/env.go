package env

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const defaultAppEnv = "dev"

// Load reads .env (secrets, optional) and then .env.<APP_ENV> on top of it,
// and returns the active APP_ENV. Variables already set in the process win
// over .env; the per-environment file overrides both.
func Load(dir string) string {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = defaultAppEnv
	}

	if err := godotenv.Load(join(dir, ".env")); err != nil {
		log.Printf("Info: no .env file with secrets found (this is OK for CI/CD)")
	}

	envFile := join(dir, fmt.Sprintf(".env.%s", appEnv))
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Overload(envFile); err != nil {
			log.Printf("Warning: could not load %s: %v", envFile, err)
		}
	}

	return appEnv
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + string(os.PathSeparator) + name
}
