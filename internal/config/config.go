package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Neo4j      Neo4jConfig      `mapstructure:"neo4j"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Recommend  RecommendConfig  `mapstructure:"recommendation"`
	Captions   CaptionConfig    `mapstructure:"captions"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Security   SecurityConfig   `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type Neo4jConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topics  struct {
		UserInteractions string `mapstructure:"user_interactions"`
	} `mapstructure:"topics"`
	ConsumerEnabled bool `mapstructure:"consumer_enabled"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RecommendConfig carries the blend weights and strategy parameters. The
// defaults reproduce the production scoring: 0.4 content, 0.4 collaborative,
// 0.2 trending, a 7-day trending window over the top 50 posts, and similar
// users weighted 0.7 by liked overlap and 0.3 by follow overlap.
type RecommendConfig struct {
	ContentWeight       float64       `mapstructure:"content_weight"`
	CollaborativeWeight float64       `mapstructure:"collaborative_weight"`
	TrendingWeight      float64       `mapstructure:"trending_weight"`
	DefaultLimit        int           `mapstructure:"default_limit"`
	TrendingPoolSize    int           `mapstructure:"trending_pool_size"`
	TrendingWindow      time.Duration `mapstructure:"trending_window"`
	SimilarUserLimit    int           `mapstructure:"similar_user_limit"`
	LikedOverlapWeight  float64       `mapstructure:"liked_overlap_weight"`
	FollowOverlapWeight float64       `mapstructure:"follow_overlap_weight"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

type CaptionConfig struct {
	MaxWords int           `mapstructure:"max_words"`
	ModelTTL time.Duration `mapstructure:"model_ttl"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Mongo defaults
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "lumeo")
	viper.SetDefault("mongo.connect_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.url", "localhost:6379")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.timeout", "5s")

	// Neo4j defaults
	viper.SetDefault("neo4j.url", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")

	// Kafka defaults
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topics.user_interactions", "user-interactions")
	viper.SetDefault("kafka.consumer_enabled", true)

	// Auth defaults
	viper.SetDefault("auth.token_ttl", "24h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Recommendation defaults
	viper.SetDefault("recommendation.content_weight", 0.4)
	viper.SetDefault("recommendation.collaborative_weight", 0.4)
	viper.SetDefault("recommendation.trending_weight", 0.2)
	viper.SetDefault("recommendation.default_limit", 20)
	viper.SetDefault("recommendation.trending_pool_size", 50)
	viper.SetDefault("recommendation.trending_window", "168h")
	viper.SetDefault("recommendation.similar_user_limit", 10)
	viper.SetDefault("recommendation.liked_overlap_weight", 0.7)
	viper.SetDefault("recommendation.follow_overlap_weight", 0.3)
	viper.SetDefault("recommendation.cache_ttl", "15m")

	// Caption defaults
	viper.SetDefault("captions.max_words", 15)
	viper.SetDefault("captions.model_ttl", "10m")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
