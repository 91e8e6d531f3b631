package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type JwtConfig struct {
	Key         string `toml:"key"`
	ExpireHours int    `toml:"expireHours"`
	Issuer      string `toml:"issuer"`
}

// GroqConfig 托管低延迟推理后端（OpenAI 兼容接口）
type GroqConfig struct {
	APIKey         string `toml:"apiKey"`
	BaseURL        string `toml:"baseURL"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

// GeminiConfig 托管多轮生成式后端
type GeminiConfig struct {
	APIKey         string `toml:"apiKey"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

// OllamaConfig 本地推理服务
type OllamaConfig struct {
	BaseURL        string `toml:"baseURL"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	NumPredict     int    `toml:"numPredict"`
}

type AIConfig struct {
	Groq   GroqConfig   `toml:"groq"`
	Gemini GeminiConfig `toml:"gemini"`
	Ollama OllamaConfig `toml:"ollama"`
}

// ChatConfig 聊天编排相关参数
type ChatConfig struct {
	DatasetPath string `toml:"datasetPath"`
	// 用户消息按 (role, content) 去重的时间窗口，秒
	DedupWindowSeconds int `toml:"dedupWindowSeconds"`
}

type Config struct {
	MainConfig  `toml:"mainConfig"`
	MysqlConfig `toml:"mysqlConfig"`
	JwtConfig   `toml:"jwtConfig"`
	AIConfig    `toml:"aiConfig"`
	LogConfig   `toml:"logConfig"`
	ChatConfig  `toml:"chatConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := os.Getenv("FITBUDDY_CONFIG")
	if configPath == "" {
		configPath = "configs/config_local.toml"
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("failed to load config file: %v, falling back to defaults", err)
		return err
	}
	return nil
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
		applyDefaults(config)
	}
	return config
}

func applyDefaults(c *Config) {
	if c.AIConfig.Groq.APIKey == "" {
		c.AIConfig.Groq.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if c.AIConfig.Groq.BaseURL == "" {
		c.AIConfig.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.AIConfig.Groq.Model == "" {
		c.AIConfig.Groq.Model = "llama-3.3-70b-versatile"
	}
	if c.AIConfig.Gemini.APIKey == "" {
		c.AIConfig.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.AIConfig.Gemini.Model == "" {
		c.AIConfig.Gemini.Model = "gemini-2.5-flash"
	}
	if c.AIConfig.Ollama.BaseURL == "" {
		c.AIConfig.Ollama.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	if c.AIConfig.Ollama.BaseURL == "" {
		c.AIConfig.Ollama.BaseURL = "http://127.0.0.1:11434"
	}
	if c.AIConfig.Ollama.NumPredict <= 0 {
		c.AIConfig.Ollama.NumPredict = 1024
	}
	if c.ChatConfig.DatasetPath == "" {
		c.ChatConfig.DatasetPath = "dataset.csv"
	}
	if c.ChatConfig.DedupWindowSeconds <= 0 {
		c.ChatConfig.DedupWindowSeconds = 5
	}
}
