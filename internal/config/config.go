package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               SQLiteConfig            `env:",prefix=DB_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	YooKassa         YooKassaConfig          `env:",prefix=YOOKASSA_"`
	State            StateConfig             `env:",prefix=STATE_"`
	Redis            RedisConfig             `env:",prefix=REDIS_"`
	Orders           OrdersConfig            `env:",prefix=ORDERS_"`
	Funds            FundsConfig             `env:",prefix=FUNDS_"`
	Account          AccountConfig           `env:",prefix=ACCOUNT_"`
	Workers          WorkersConfig           `env:",prefix=WORKERS_"`
	Metrics          MetricsConfig           `env:",prefix=METRICS_"`
}

type TelegramConfig struct {
	BotToken        string        `env:"BOT_TOKEN,required"`
	Timeout         time.Duration `env:"TIMEOUT,default=30s"`
	AdminIDs        []int64       `env:"ADMIN_IDS"`
	SupportUsername string        `env:"SUPPORT_USERNAME,default=smmpanel_support"`
}

type YooKassaConfig struct {
	ShopID      string `env:"SHOP_ID"`
	SecretKey   string `env:"SECRET_KEY"`
	ReturnURL   string `env:"RETURN_URL,default=https://example.com/payment/return"`
	Currency    string `env:"CURRENCY,default=INR"`
	MockPayment bool   `env:"MOCK_PAYMENT,default=false"`
}

// StateConfig selects where conversation state lives. A zero TTL keeps a
// conversation until the user finishes or cancels it.
type StateConfig struct {
	Backend   string        `env:"BACKEND,default=memory"`
	TTL       time.Duration `env:"TTL,default=0s"`
	KeyPrefix string        `env:"KEY_PREFIX,default=smmpanel:conv:"`
}

func (s StateConfig) UseRedis() bool {
	return s.Backend == "redis"
}

type RedisConfig struct {
	Addr     string `env:"ADDR,default=127.0.0.1:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
	UseTLS   bool   `env:"USE_TLS,default=false"`
}

type OrdersConfig struct {
	MinQuantity int `env:"MIN_QUANTITY,default=100"`
	MaxQuantity int `env:"MAX_QUANTITY,default=100000"`
}

type FundsConfig struct {
	MinAmount            int     `env:"MIN_AMOUNT,default=100"`
	MaxAmount            int     `env:"MAX_AMOUNT,default=50000"`
	CardFeePercent       float64 `env:"CARD_FEE_PERCENT,default=3"`
	NetbankingFeePercent float64 `env:"NETBANKING_FEE_PERCENT,default=2.5"`
}

func (f FundsConfig) CardFee() decimal.Decimal {
	return decimal.NewFromFloat(f.CardFeePercent)
}

func (f FundsConfig) NetbankingFee() decimal.Decimal {
	return decimal.NewFromFloat(f.NetbankingFeePercent)
}

type AccountConfig struct {
	ProcessingDelay time.Duration `env:"PROCESSING_DELAY,default=5s"`
}

type WorkersConfig struct {
	PaymentCheckSchedule string `env:"PAYMENT_CHECK_SCHEDULE,default=@every 30s"`
}

type MetricsConfig struct {
	Namespace string `env:"NAMESPACE,default=smmpanel"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type SQLiteConfig struct {
	Path         string `env:"PATH,default=./data/smmpanel.db"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=1"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=1"`
	MaxLifetime  string `env:"MAX_LIFETIME,default=5m"`
}

// DSN enables foreign keys and takes the write lock at BEGIN so balance
// checks and debits inside one transaction never interleave.
func (c SQLiteConfig) DSN() string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_txlock=immediate&_busy_timeout=5000", c.Path)
}
