package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericfisherdev/happyplace/internal/logger"
)

// EnvLoader reads .env files into the process environment without
// overriding variables that are already set.
type EnvLoader struct {
	loaded  map[string]string
	baseDir string
	log     *logger.Logger
}

// NewEnvLoader creates a loader rooted at baseDir.
func NewEnvLoader(baseDir string) *EnvLoader {
	return &EnvLoader{
		baseDir: baseDir,
		loaded:  make(map[string]string),
		log:     logger.Nop(),
	}
}

// WithLogger sets where parse warnings go.
func (l *EnvLoader) WithLogger(log *logger.Logger) *EnvLoader {
	if log != nil {
		l.log = log
	}
	return l
}

// LoadEnvFiles loads, last one winning:
// .env.defaults, .env.<environment>, .env.local, .env
func (l *EnvLoader) LoadEnvFiles(environment string) error {
	files := []string{".env.defaults", ".env." + environment, ".env.local", ".env"}

	for _, name := range files {
		path := filepath.Join(l.baseDir, name)
		if err := l.loadEnvFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			l.log.With("file", name).Warn("env file skipped: " + err.Error())
		}
	}

	for key, value := range l.loaded {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			l.log.With("key", key).Warn("env variable not set: " + err.Error())
		}
	}
	return nil
}

func (l *EnvLoader) loadEnvFile(path string) error {
	file, err := os.Open(path) // #nosec G304 -- fixed names under baseDir
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			l.log.WithFields(map[string]any{"file": path, "line": lineNum}).Warn("invalid env line")
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))
		l.loaded[key] = os.ExpandEnv(value)
	}
	return scanner.Err()
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if (first == '"' || first == '\'') && first == last {
		return value[1 : len(value)-1]
	}
	return value
}

// GetLoadedVars returns a copy of every variable read from files.
func (l *EnvLoader) GetLoadedVars() map[string]string {
	result := make(map[string]string, len(l.loaded))
	for k, v := range l.loaded {
		result[k] = v
	}
	return result
}

// AutoLoadEnv loads .env files for the environment named by ENV or
// ENVIRONMENT, defaulting to development.
func AutoLoadEnv(baseDir string) error {
	env := os.Getenv("ENV")
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if env == "" {
		env = EnvDevelopment
	}
	return NewEnvLoader(baseDir).LoadEnvFiles(env)
}
