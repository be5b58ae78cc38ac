package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds everything the bot reads from the environment.
type Config struct {
	BotToken string
	// AdminIDs is the static allow-list: these identities are admins even
	// without a users row.
	AdminIDs map[int64]bool

	DBDriver string // "sqlite" (default) or "mysql"
	DBFile   string // sqlite path
	DBDSN    string // mysql DSN

	HTTPAddr          string
	AdminPasswordHash string // bcrypt hash for the ops API login
	JWTSecret         string

	ManagerUsername string
	TechUsername    string
	SiteURL         string
}

func Load() *Config {
	cfg := &Config{
		BotToken:          os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminIDs:          parseAdminIDs(os.Getenv("ADMIN_IDS")),
		DBDriver:          getenv("DB_DRIVER", "sqlite"),
		DBFile:            getenv("DB_FILE", "vera.db"),
		DBDSN:             os.Getenv("DB_DSN"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		ManagerUsername:   getenv("MANAGER_USERNAME", "AnnaBardo_nova"),
		TechUsername:      getenv("TECH_USERNAME", "Arailon"),
		SiteURL:           getenv("OFFICIAL_SITE_URL", "https://example.com"),
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseAdminIDs(raw string) map[int64]bool {
	ids := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids[id] = true
	}
	return ids
}
