package config

import (
	"flag"
	"strconv"
)

// Config описывает конфигурацию сервера сокращения ссылок.
type Config struct {
	ServerAddress    string // адрес сервера
	BaseURL          string // базовый адрес сокращенной ссылки, если пустой, определяется по запросу
	LogLevel         string // уровень логирования
	EnableHTTPS      bool   // включает HTTPS с самоподписанным сертификатом
	RegisterAttempts int    // число попыток подобрать свободный токен
}

const (
	defaultServerAddr       = ":8080"
	defaultLogLevel         = "info"
	defaultRegisterAttempts = 10
)

// Environment определяет доступ к переменным среды.
type Environment interface {
	LookupEnv(key string) (string, bool)
}

// New создает экземпляр конфигурации с настройками по умолчанию.
func New() Config {
	return Config{
		ServerAddress:    defaultServerAddr,
		LogLevel:         defaultLogLevel,
		RegisterAttempts: defaultRegisterAttempts,
	}
}

// FromArgs заполняет параметры конфигурации из аргументов командной строки.
func (conf Config) FromArgs(args []string) Config {
	flagSet := flag.NewFlagSet("", flag.PanicOnError)
	flagSet.StringVar(&conf.ServerAddress, "a", conf.ServerAddress, "server address")
	flagSet.StringVar(&conf.BaseURL, "b", conf.BaseURL, "base URL")
	flagSet.StringVar(&conf.LogLevel, "l", conf.LogLevel, "log level")
	flagSet.BoolVar(&conf.EnableHTTPS, "s", conf.EnableHTTPS, "enable HTTPS")
	flagSet.IntVar(&conf.RegisterAttempts, "r", conf.RegisterAttempts, "token register attempts")

	_ = flagSet.Parse(args[1:]) // exclude command name
	return conf
}

// FromEnv заполняет параметры конфигурации из переменных среды.
// Значения, которые не удалось разобрать, пропускаются.
func (conf Config) FromEnv(env Environment) Config {
	if servAddr, ok := env.LookupEnv("SERVER_ADDRESS"); ok {
		conf.ServerAddress = servAddr
	}

	if baseURL, ok := env.LookupEnv("BASE_URL"); ok {
		conf.BaseURL = baseURL
	}

	if level, ok := env.LookupEnv("LOG_LEVEL"); ok {
		conf.LogLevel = level
	}

	if value, ok := env.LookupEnv("ENABLE_HTTPS"); ok {
		if enable, err := strconv.ParseBool(value); err == nil {
			conf.EnableHTTPS = enable
		}
	}

	if value, ok := env.LookupEnv("REGISTER_ATTEMPTS"); ok {
		if attempts, err := strconv.Atoi(value); err == nil {
			conf.RegisterAttempts = attempts
		}
	}

	return conf
}
