package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDTelegramENV = "TELEGRAM_CHAT_ID"
	walletENV         = "WALLET_ADDRESS"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	API struct {
		GammaBase string `yaml:"gamma_base"`
		ClobBase  string `yaml:"clob_base"`
		DataBase  string `yaml:"data_base"`
		MarketWS  string `yaml:"market_ws"`
	} `yaml:"api"`

	// Wallet to show in /wallet. Optional.
	WalletAddress string `yaml:"wallet_address"`

	PositionsPath string `yaml:"positions_path"`
	SettingsPath  string `yaml:"settings_path"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	config := Config{
		PositionsPath: getenvDefault("POSITIONS_FILE", "positions.json"),
		SettingsPath:  getenvDefault("SETTINGS_FILE", "monitor_config.json"),
	}
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		config.Telegram.Token = token
	}
	if chat := int64FromEnv(chatIDTelegramENV, 0); chat != 0 {
		config.Telegram.ChatID = chat
	}
	if w := os.Getenv(walletENV); w != "" {
		config.WalletAddress = w
	}

	return &config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func int64FromEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
