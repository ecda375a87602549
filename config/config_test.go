package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("AUTO_REFRESH_INTERVAL_SECONDS", "bogus")
	t.Setenv("SERVICE_PORT", "")

	conf := CreateNewConfig()

	assert.Equal(t, "https://api.example.com", conf.BackendConfig.BaseURL)
	assert.Equal(t, 3*time.Second, conf.BackendConfig.RequestTimeout)
	assert.Zero(t, conf.AutoRefreshInterval)
	assert.Equal(t, "8080", conf.ServicePort)
	assert.Equal(t, "admin-console-events", conf.KafkaConfig.BrokerTopic)
}
