package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLASSIFIER_URL", "")
	t.Setenv("PYTHON_BACKEND_URL", "")
	t.Setenv("CLASSIFIER_TIMEOUT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.ClassifierURL)
	assert.Equal(t, 60*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, 10*1024*1024, cfg.MaxUploadBytes)
	assert.Contains(t, cfg.DSN(), "dbname=grievances")
}

func TestLoad_ClassifierURLFallsBackToLegacyVariable(t *testing.T) {
	t.Setenv("CLASSIFIER_URL", "")
	t.Setenv("PYTHON_BACKEND_URL", "http://analysis:9000/")

	cfg := Load()

	assert.Equal(t, "http://analysis:9000", cfg.ClassifierURL)
}

func TestDSN_PrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/portal?sslmode=require")

	cfg := Load()

	assert.Equal(t, "postgres://u:p@db:5432/portal?sslmode=require", cfg.DSN())
}

func TestLoad_InvalidValuesUseFallbacks(t *testing.T) {
	t.Setenv("CLASSIFIER_TIMEOUT", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")

	cfg := Load()

	assert.Equal(t, 60*time.Second, cfg.ClassifierTimeout)
	assert.Equal(t, 10*1024*1024, cfg.MaxUploadBytes)
}
