package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	MqttBrokerURL            string
	MqttClientID             string
	MqttUsername             string
	MqttPassword             string
	MqttKeepAliveSeconds     string
	MqttReconnectMaxAttempts string
	MqttReconnectBaseDelayMS string
	MqttReconnectMaxDelayMS  string
}
