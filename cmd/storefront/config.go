package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type config struct {
	ListenAddress  string
	Country        string
	Currency       string
	Locales        []language.Tag
	FacetsFile     string
	AttributesFile string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	RabbitUrl      string
	RefreshEvery   time.Duration
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n >= 0 {
		return n
	}
	return fallback
}

// parseLocales reads a comma separated list, skipping invalid tags.
func parseLocales(s string) []language.Tag {
	ret := []language.Tag{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if tag, err := language.Parse(part); err == nil {
			ret = append(ret, tag)
		}
	}
	return ret
}

func loadConfig() config {
	locales := parseLocales(getEnv("LOCALES", "en,de"))
	if len(locales) == 0 {
		locales = []language.Tag{language.English}
	}
	refresh := getEnvInt("CATEGORY_REFRESH", 15)
	if refresh == 0 {
		refresh = 15
	}
	return config{
		ListenAddress:  getEnv("LISTEN_ADDRESS", ":8080"),
		Country:        getEnv("COUNTRY", "DE"),
		Currency:       getEnv("CURRENCY", "EUR"),
		Locales:        locales,
		FacetsFile:     getEnv("FACETS_FILE", "data/facets.json"),
		AttributesFile: getEnv("ATTRIBUTES_FILE", "data/attributes.json"),
		RedisAddr:      os.Getenv("REDIS_URL"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL", 60)) * time.Second,
		RabbitUrl:      os.Getenv("RABBIT_HOST"),
		RefreshEvery:   time.Duration(refresh) * time.Minute,
	}
}
