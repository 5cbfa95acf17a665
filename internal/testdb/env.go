package testdb

import "os"

// Environment variables checked for a test database, in order.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTestDatabaseURL = "MINSPIRIT_TEST_DATABASE_URL"
	EnvAppDatabaseURL  = "MINSPIRIT_DATABASE_URL"
)

// GetTestDatabaseURL returns the first configured database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range []string{EnvDatabaseURL, EnvTestDatabaseURL, EnvAppDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a database URL is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// IsCI reports whether the tests run in a CI environment.
func IsCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
