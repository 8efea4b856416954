package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	C "github.com/portside/httpmeta/constant"
	L "github.com/portside/httpmeta/log"
)

func TestParseFull(t *testing.T) {
	doc := `
log-level: debug
external-controller: 127.0.0.1:9090
secret: hunter2
listeners:
  - http://0.0.0.0:8080
  - type: tls
    bind-address: 0.0.0.0:8443
    certificate: /etc/httpmeta/cert.pem
    private-key: /etc/httpmeta/key.pem
  - unix:///run/httpmeta.sock
`
	cfg, err := Parse([]byte(doc))
	assert.Nil(t, err)
	assert.Equal(t, L.DEBUG, cfg.General.LogLevel)
	assert.Equal(t, "127.0.0.1:9090", cfg.General.ExternalController)
	assert.Equal(t, "hunter2", cfg.General.Secret)
	assert.Len(t, cfg.Listeners, 3)

	assert.Equal(t, C.InboundTypePlain, cfg.Listeners[0].Type)
	assert.Equal(t, "0.0.0.0:8080", cfg.Listeners[0].BindAddress)
	assert.Equal(t, C.InboundTypeTLS, cfg.Listeners[1].Type)
	assert.Equal(t, C.InboundTypeUnix, cfg.Listeners[2].Type)
	assert.Equal(t, "/run/httpmeta.sock", cfg.Listeners[2].BindAddress)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("listeners: [http://127.0.0.1:8080]"))
	assert.Nil(t, err)
	assert.Equal(t, L.INFO, cfg.General.LogLevel)
	assert.Equal(t, "", cfg.General.ExternalController)
}

func TestParseDuplicateListener(t *testing.T) {
	doc := `
listeners:
  - http://127.0.0.1:8080
  - http://127.0.0.1:8080
`
	_, err := Parse([]byte(doc))
	assert.NotNil(t, err)
}

func TestParseBadInbound(t *testing.T) {
	_, err := Parse([]byte("listeners: [ftp://127.0.0.1:21]"))
	assert.NotNil(t, err)

	_, err = Parse([]byte("listeners: [http://noport.example]"))
	assert.NotNil(t, err)

	// tls without a certificate pair is rejected
	_, err = Parse([]byte("listeners: [{type: tls, bind-address: '0.0.0.0:8443'}]"))
	assert.NotNil(t, err)
}
