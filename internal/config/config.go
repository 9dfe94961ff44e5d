package config

type Config struct {
	BaseURL  string
	HttpPort int
	Db       struct {
		Dsn         string
		Automigrate bool
	}
	Jwt struct {
		SecretKey string
	}
	Notifications struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	FileUploader struct {
		CloudName string
		ApiKey    string
		ApiSecret string
	}
	RedisServer  string
	KafkaServers string
	Payment      PaymentChannels
}

// PaymentChannels holds the manual payment instructions we show to
// clients after a reservation is created. Deposits are reconciled by
// hand against these channels, there is no gateway integration.
type PaymentChannels struct {
	OrangeMoneyNumber string
	WaveNumber        string
	WhatsAppNumber    string
}
