package config

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// Config 扁平化配置结构体
type Config struct {
	// 服务器配置
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerDomain       string        `mapstructure:"server_domain"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// 数据库配置
	DBType            string `mapstructure:"db_type"`
	DBHost            string `mapstructure:"db_host"`
	DBPort            int    `mapstructure:"db_port"`
	DBUsername        string `mapstructure:"db_username"`
	DBPassword        string `mapstructure:"db_password"`
	DBName            string `mapstructure:"db_name"`
	DBFilePath        string `mapstructure:"db_file_path"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// JWT 配置
	JWTSecret           string `mapstructure:"jwt_secret"`
	JWTExpiresIn        string `mapstructure:"jwt_expires_in"`
	JWTRefreshExpiresIn string `mapstructure:"jwt_refresh_expires_in"`

	// 上传与物化配置
	UploadRoot        string `mapstructure:"upload_root"`
	UploadMaxSizeMB   int    `mapstructure:"upload_max_size_mb"`
	MaterializerMode  string `mapstructure:"materializer_mode"` // local | remote | hybrid
	ThumbnailWidth    int    `mapstructure:"thumbnail_width"`
	StrictImageChecks bool   `mapstructure:"strict_image_checks"`

	// 远程图床配置
	RemoteType      string `mapstructure:"remote_type"` // minio | webdav
	RemoteEndpoint  string `mapstructure:"remote_endpoint"`
	RemoteAccessKey string `mapstructure:"remote_access_key"`
	RemoteSecretKey string `mapstructure:"remote_secret_key"`
	RemoteBucket    string `mapstructure:"remote_bucket"`
	RemoteBaseURL   string `mapstructure:"remote_base_url"`
	RemoteUseSSL    bool   `mapstructure:"remote_use_ssl"`
	RemoteUsername  string `mapstructure:"remote_username"`
	RemotePassword  string `mapstructure:"remote_password"`
	RemotePrefix    string `mapstructure:"remote_prefix"`

	// 缓存配置
	CacheType          string `mapstructure:"cache_type"` // memory | redis
	CacheRedisAddr     string `mapstructure:"cache_redis_addr"`
	CacheRedisPassword string `mapstructure:"cache_redis_password"`
	CacheRedisDB       int    `mapstructure:"cache_redis_db"`
	CacheAlbumTTL      int    `mapstructure:"cache_album_ttl"`
	CacheThumbnailTTL  int    `mapstructure:"cache_thumbnail_ttl"`

	// 限流配置
	RateLimitApiRPS     float64       `mapstructure:"rate_limit_api_rps"`
	RateLimitApiBurst   int           `mapstructure:"rate_limit_api_burst"`
	RateLimitAuthRPS    float64       `mapstructure:"rate_limit_auth_rps"`
	RateLimitAuthBurst  int           `mapstructure:"rate_limit_auth_burst"`
	RateLimitThumbRPS   float64       `mapstructure:"rate_limit_thumb_rps"`
	RateLimitThumbBurst int           `mapstructure:"rate_limit_thumb_burst"`
	RateLimitExpireTime time.Duration `mapstructure:"rate_limit_expire_time"`

	// Worker 配置
	WorkerCount int `mapstructure:"worker_count"`
}

// InitConfig Initialize configuration
func InitConfig() {
	once.Do(func() {
		loadConfig()
	})
}

func Get() *Config {
	return &globalConfig
}

// loadConfig Core configuration loading
func loadConfig() {
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}

	// WorkerCount: -1 = 使用 CPU 线程数, 0 = 使用默认值, >0 = 使用指定值
	switch {
	case globalConfig.WorkerCount < 0:
		globalConfig.WorkerCount = runtime.GOMAXPROCS(0)
	case globalConfig.WorkerCount == 0:
		globalConfig.WorkerCount = getCpus()
	}
}

// setDefaults 设置默认值
func setDefaults() {
	// 服务器配置默认值
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_domain", "")
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	// 数据库配置默认值
	viper.SetDefault("db_type", "sqlite")
	viper.SetDefault("db_host", "localhost")
	viper.SetDefault("db_port", 5432)
	viper.SetDefault("db_username", "postgres")
	viper.SetDefault("db_password", "")
	viper.SetDefault("db_name", "albumix")
	viper.SetDefault("db_file_path", "")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	// JWT 配置默认值
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("jwt_expires_in", "15m")
	viper.SetDefault("jwt_refresh_expires_in", "720h")

	// 上传与物化配置默认值
	viper.SetDefault("upload_root", "./data/uploads")
	viper.SetDefault("upload_max_size_mb", 50)
	viper.SetDefault("materializer_mode", "local")
	viper.SetDefault("thumbnail_width", 300)
	viper.SetDefault("strict_image_checks", true)

	// 远程图床配置默认值
	viper.SetDefault("remote_type", "minio")
	viper.SetDefault("remote_endpoint", "")
	viper.SetDefault("remote_access_key", "")
	viper.SetDefault("remote_secret_key", "")
	viper.SetDefault("remote_bucket", "albumix-thumbnails")
	viper.SetDefault("remote_base_url", "")
	viper.SetDefault("remote_use_ssl", true)
	viper.SetDefault("remote_username", "")
	viper.SetDefault("remote_password", "")
	viper.SetDefault("remote_prefix", "albumix")

	// 缓存配置默认值
	viper.SetDefault("cache_type", "memory")
	viper.SetDefault("cache_redis_addr", "localhost:6379")
	viper.SetDefault("cache_redis_password", "")
	viper.SetDefault("cache_redis_db", 0)
	viper.SetDefault("cache_album_ttl", 300)
	viper.SetDefault("cache_thumbnail_ttl", 3600)

	// 限流配置默认值
	viper.SetDefault("rate_limit_api_rps", 30.0)
	viper.SetDefault("rate_limit_api_burst", 60)
	viper.SetDefault("rate_limit_auth_rps", 0.5)
	viper.SetDefault("rate_limit_auth_burst", 5)
	viper.SetDefault("rate_limit_thumb_rps", 100.0)
	viper.SetDefault("rate_limit_thumb_burst", 200)
	viper.SetDefault("rate_limit_expire_time", "10m")

	// Worker 配置默认值
	viper.SetDefault("worker_count", 0)
}

// Addr 返回监听地址，格式为 "host:port"
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// BaseURL 返回基础 URL，用于生成缩略图链接
func (c *Config) BaseURL() string {
	if c.ServerDomain != "" {
		return c.ServerDomain
	}
	host := c.ServerHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.ServerPort)
}

// RemoteOptions 以通用选项表的形式返回远程图床配置，
// 由 remotehost 工厂用 mapstructure 解码为具体实现的配置。
func (c *Config) RemoteOptions() map[string]interface{} {
	return map[string]interface{}{
		"type":       c.RemoteType,
		"endpoint":   c.RemoteEndpoint,
		"access_key": c.RemoteAccessKey,
		"secret_key": c.RemoteSecretKey,
		"bucket":     c.RemoteBucket,
		"base_url":   c.RemoteBaseURL,
		"use_ssl":    c.RemoteUseSSL,
		"username":   c.RemoteUsername,
		"password":   c.RemotePassword,
		"prefix":     c.RemotePrefix,
	}
}

// getCpus 获取默认线程数量
func getCpus() int {
	n := runtime.GOMAXPROCS(0)
	if n < 2 {
		return 2
	}
	return n
}
