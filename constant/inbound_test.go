package constant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestInboundAlias(t *testing.T) {
	var in Inbound
	assert.Nil(t, yaml.Unmarshal([]byte(`"http://127.0.0.1:8080"`), &in))
	assert.Equal(t, InboundTypePlain, in.Type)
	assert.Equal(t, "127.0.0.1:8080", in.BindAddress)
	assert.Equal(t, Plain, in.TransportKind())
	assert.Equal(t, "plain://127.0.0.1:8080", in.ToAlias())
}

func TestInboundUnixAlias(t *testing.T) {
	var in Inbound
	assert.Nil(t, yaml.Unmarshal([]byte(`"unix:///run/httpmeta.sock"`), &in))
	assert.Equal(t, InboundTypeUnix, in.Type)
	assert.Equal(t, "/run/httpmeta.sock", in.BindAddress)
	assert.Equal(t, PathBased, in.TransportKind())
}

func TestInboundStructForm(t *testing.T) {
	doc := `
type: tls
bind-address: 0.0.0.0:8443
certificate: cert.pem
private-key: key.pem
`
	var in Inbound
	assert.Nil(t, yaml.Unmarshal([]byte(doc), &in))
	assert.Equal(t, InboundTypeTLS, in.Type)
	assert.Equal(t, Encrypted, in.TransportKind())
}

func TestInboundJSON(t *testing.T) {
	var in Inbound
	assert.Nil(t, json.Unmarshal([]byte(`"http://0.0.0.0:3000"`), &in))
	assert.Equal(t, InboundTypePlain, in.Type)

	buf, err := json.Marshal(&in)
	assert.Nil(t, err)
	assert.JSONEq(t, `{"type":"plain","bind-address":"0.0.0.0:3000"}`, string(buf))
}

func TestInboundInvalid(t *testing.T) {
	var in Inbound
	assert.NotNil(t, yaml.Unmarshal([]byte(`"socks5://127.0.0.1:1080"`), &in))
	assert.NotNil(t, yaml.Unmarshal([]byte(`"http://nohost"`), &in))
	assert.NotNil(t, yaml.Unmarshal([]byte(`"unix://"`), &in))
}
