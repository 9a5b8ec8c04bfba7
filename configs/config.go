package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PostgresURI   string
	RedisURI      string
	AutomationURL string
	AppBaseURL    string
	FrontendURL   string
	ServerAddr    string
	R2            R2
	SecretKey     string
	CookieName    string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", ""),
		AutomationURL: getEnv("AUTOMATION_SERVICE_URL", "http://automation:5000"),
		AppBaseURL:    getEnv("APP_BASE_URL", "http://localhost:3000"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "socialtrend_token"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
