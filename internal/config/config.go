// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	Log           LogConfig           `mapstructure:"log"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	Vocabulary    VocabularyConfig    `mapstructure:"vocabulary"`
	Retrieval     RetrievalConfig     `mapstructure:"retrieval"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Admin         AdminConfig         `mapstructure:"admin"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// KafkaConfig 存储 Kafka 相关的配置。
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// ElasticsearchConfig 存储 Elasticsearch 相关的配置。
type ElasticsearchConfig struct {
	Addresses string `mapstructure:"addresses"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	IndexName string `mapstructure:"index_name"`
}

// MinIOConfig 存储 MinIO 对象存储的配置。
// Endpoint 为空时表示不启用入库批次归档。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// VocabularyConfig 存储词表相关的配置。
// 词表是带版本号的注入式配置：不配置时使用内置默认词表（tfidf-256）。
// TermsFile 指向一个每行一个词条的文本文件，Model 为对应的向量模型标签。
type VocabularyConfig struct {
	TermsFile string `mapstructure:"terms_file"`
	Model     string `mapstructure:"model"`
}

// RetrievalConfig 存储检索相关的可调参数。
type RetrievalConfig struct {
	// Threshold 是语义检索的默认相似度下限。
	Threshold float64 `mapstructure:"threshold"`
	// SimilarThreshold 是相似文档发现的相似度下限。
	SimilarThreshold float64 `mapstructure:"similar_threshold"`
	// LexicalK / SemanticK 控制问答混合检索两路各召回多少条。
	LexicalK  int `mapstructure:"lexical_k"`
	SemanticK int `mapstructure:"semantic_k"`
	// MaxContext 是问答上下文去重后的最大分块数。
	MaxContext int `mapstructure:"max_context"`
}

// LLMConfig 存储大语言模型相关的配置。APIKey 为空时问答走抽取式降级路径。
type LLMConfig struct {
	APIKey         string              `mapstructure:"api_key"`
	BaseURL        string              `mapstructure:"base_url"`
	Model          string              `mapstructure:"model"`
	TimeoutSeconds int                 `mapstructure:"timeout_seconds"`
	Generation     LLMGenerationConfig `mapstructure:"generation"`
	Prompt         LLMPromptConfig     `mapstructure:"prompt"`
}

// LLMGenerationConfig 配置生成相关参数（可选）。
type LLMGenerationConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// LLMPromptConfig 配置系统提示（可选，缺省使用内置提示）。
type LLMPromptConfig struct {
	Rules        string `mapstructure:"rules"`
	NoResultText string `mapstructure:"no_result_text"`
}

// AdminConfig 配置启动时自举的管理员账号。
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}

	applyDefaults(&Conf)
}

// applyDefaults 为未配置的检索与 LLM 参数填入默认值。
func applyDefaults(c *Config) {
	if c.Retrieval.Threshold == 0 {
		c.Retrieval.Threshold = 0.1
	}
	if c.Retrieval.SimilarThreshold == 0 {
		c.Retrieval.SimilarThreshold = 0.05
	}
	if c.Retrieval.LexicalK == 0 {
		c.Retrieval.LexicalK = 5
	}
	if c.Retrieval.SemanticK == 0 {
		c.Retrieval.SemanticK = 5
	}
	if c.Retrieval.MaxContext == 0 {
		c.Retrieval.MaxContext = 6
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
}
