package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	App    AppConfig      `mapstructure:"app"`
	MySQL  DatabaseConfig `mapstructure:"mysql"`
	Redis  RedisConfig    `mapstructure:"redis"`
	Log    LogConfig      `mapstructure:"log"`
	JWT    JWTConfig      `mapstructure:"jwt"`
	COS    COSConfig      `mapstructure:"cos"`
	Google GoogleConfig   `mapstructure:"google"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string     `mapstructure:"name"`
	Mode     string     `mapstructure:"mode"`
	Port     int        `mapstructure:"port"`
	PageSize int        `mapstructure:"page_size"`
	Cors     CorsConfig `mapstructure:"cors"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey            string `mapstructure:"secret_key"`
	AccessExpireSeconds  int    `mapstructure:"access_expire_seconds"`
	RefreshExpireSeconds int    `mapstructure:"refresh_expire_seconds"`
	BufferSeconds        int    `mapstructure:"buffer_seconds"`
	Issuer               string `mapstructure:"issuer"`
	Blacklist            string `mapstructure:"blacklist"` // memory / redis
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	LogLevel     string `mapstructure:"log_level"`
}

// DSN 获取数据库连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Addr 获取Redis地址
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// COSConfig 腾讯云COS对象存储配置
type COSConfig struct {
	SecretID            string `mapstructure:"secret_id"`
	SecretKey           string `mapstructure:"secret_key"`
	BucketURL           string `mapstructure:"bucket_url"`
	UploadExpireSeconds int    `mapstructure:"upload_expire_seconds"`
}

// GoogleConfig Google登录配置
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	TokenInfoURL string `mapstructure:"token_info_url"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposedHeaders   []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// GlobalConfig 全局配置实例
var GlobalConfig *Config

// Init 初始化配置
func Init(configPath string) error {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %v", err)
	}

	GlobalConfig = &config
	return nil
}

// LoadConfig 加载指定配置文件
func LoadConfig(configPath string) *Config {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("读取配置文件失败: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	GlobalConfig = &config
	return &config
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return GlobalConfig
}
