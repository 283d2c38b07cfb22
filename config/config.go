package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Neo4j    Neo4jConfig
	Redis    RedisConfig
	Explorer ExplorerConfig
	Layout   LayoutConfig
	View     ViewConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ExplorerConfig tunes the traversal controller and the graph query client.
type ExplorerConfig struct {
	GraphServiceURL   string
	OverviewNodeLimit int
	DefaultDepth      int
	CacheTTLSeconds   int
	OverviewWarmSpec  string // cron spec for the overview cache warmer
}

// LayoutConfig carries the force-simulation tuning values. They are exposed
// through the environment so layout quality can be traded for speed without a
// code change.
type LayoutConfig struct {
	CanvasWidth   float64
	CanvasHeight  float64
	Iterations    int
	Repulsion     float64
	Attraction    float64
	Padding       float64
	ClusterRadius float64
	MemberRadius  float64
}

type ViewConfig struct {
	ZoomStep float64
	ZoomMin  float64
	ZoomMax  float64
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Neo4j: Neo4jConfig{
			URI:      getEnv("NEO4J_URI", "neo4j://localhost:7687"),
			User:     getEnv("NEO4J_USER", "neo4j"),
			Password: getEnv("NEO4J_PASSWORD", ""),
			Database: getEnv("NEO4J_DATABASE", "neo4j"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Explorer: ExplorerConfig{
			GraphServiceURL:   getEnv("GRAPH_SERVICE_URL", "http://localhost:8080/api/v1"),
			OverviewNodeLimit: getEnvAsInt("OVERVIEW_NODE_LIMIT", 40),
			DefaultDepth:      getEnvAsInt("DEFAULT_DEPTH", 1),
			CacheTTLSeconds:   getEnvAsInt("CACHE_TTL_SECONDS", 300),
			OverviewWarmSpec:  getEnv("OVERVIEW_WARM_SPEC", "0 */4 * * * *"),
		},
		Layout: LayoutConfig{
			CanvasWidth:   getEnvAsFloat("LAYOUT_CANVAS_WIDTH", 900),
			CanvasHeight:  getEnvAsFloat("LAYOUT_CANVAS_HEIGHT", 600),
			Iterations:    getEnvAsInt("LAYOUT_ITERATIONS", 60),
			Repulsion:     getEnvAsFloat("LAYOUT_REPULSION", 2200),
			Attraction:    getEnvAsFloat("LAYOUT_ATTRACTION", 0.012),
			Padding:       getEnvAsFloat("LAYOUT_PADDING", 30),
			ClusterRadius: getEnvAsFloat("LAYOUT_CLUSTER_RADIUS", 0.30),
			MemberRadius:  getEnvAsFloat("LAYOUT_MEMBER_RADIUS", 0.12),
		},
		View: ViewConfig{
			ZoomStep: getEnvAsFloat("ZOOM_STEP", 0.2),
			ZoomMin:  getEnvAsFloat("ZOOM_MIN", 0.2),
			ZoomMax:  getEnvAsFloat("ZOOM_MAX", 4.0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Neo4j.URI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}

	if c.Explorer.DefaultDepth < 1 || c.Explorer.DefaultDepth > 2 {
		return fmt.Errorf("DEFAULT_DEPTH must be 1 or 2")
	}

	if c.View.ZoomMin <= 0 || c.View.ZoomMax <= c.View.ZoomMin {
		return fmt.Errorf("ZOOM_MIN/ZOOM_MAX must satisfy 0 < min < max")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}
