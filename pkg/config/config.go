package config

// Chat definition chat_service YAML structure
type Chat struct {
	Port     string         `mapstructure:"port"`
	MongoSQL DatabaseConfig `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Rabbit   RabbitConfig   `mapstructure:"rabbit"`
	Timeline TimelineConfig `mapstructure:"timeline"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// KafkaConfig definition inbound append-log consumer setting
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	GroupID       string   `mapstructure:"group_id"`
	RetryInterval int      `mapstructure:"retry_interval"`
	RetryCount    int      `mapstructure:"retry_count"`
}

// RabbitConfig definition notification side-channel setting
type RabbitConfig struct {
	URL           string `mapstructure:"url"`
	Exchange      string `mapstructure:"exchange"`
	RoutingKey    string `mapstructure:"routing_key"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// TimelineConfig timeline/presence 的調整面
// 秒/毫秒數值為 0 時使用 domain 預設值
type TimelineConfig struct {
	GroupingWindowMs int64 `mapstructure:"grouping_window_ms"` // default 300000
	PresenceWindowMs int64 `mapstructure:"presence_window_ms"` // default 15000
	SweepIntervalMs  int64 `mapstructure:"sweep_interval_ms"`  // default 3000
	RePingIntervalMs int64 `mapstructure:"reping_interval_ms"` // default 5000
}

// Account definition account_service YAML structure
type Account struct {
	Port       string         `mapstructure:"port"`
	PostgreSQL DatabaseConfig `mapstructure:"postgres"`
	Redis      RedisConfig    `mapstructure:"redis"`
	SessionTTL int            `mapstructure:"session_ttl"` // seconds
}
