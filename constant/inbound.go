package constant

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

type InboundType string

const (
	InboundTypePlain InboundType = "plain"
	InboundTypeTLS   InboundType = "tls"
	InboundTypeUnix  InboundType = "unix"
)

var supportInboundTypes = map[InboundType]bool{
	InboundTypePlain: true,
	InboundTypeTLS:   true,
	InboundTypeUnix:  true,
}

type inbound struct {
	Type        InboundType `json:"type" yaml:"type"`
	BindAddress string      `json:"bind-address" yaml:"bind-address"`
	Certificate string      `json:"certificate" yaml:"certificate"`
	PrivateKey  string      `json:"private-key" yaml:"private-key"`
}

// Inbound describes one listener to bring up: a transport type plus a bind
// address (host:port, or a socket path for unix), and a certificate pair
// for the tls type. An Inbound also decodes from a plain alias string such
// as "http://127.0.0.1:8080" or "unix:///run/httpmeta.sock".
type Inbound inbound

// UnmarshalYAML implements yaml.Unmarshaler
func (i *Inbound) UnmarshalYAML(unmarshal func(any) error) error {
	var tp string
	if err := unmarshal(&tp); err != nil {
		var inner inbound
		if err := unmarshal(&inner); err != nil {
			return err
		}
		*i = Inbound(inner)
	} else {
		inner, err := parseInbound(tp)
		if err != nil {
			return err
		}
		*i = Inbound(*inner)
	}
	return verifyInbound(i)
}

// UnmarshalJSON implements encoding/json.Unmarshaler
func (i *Inbound) UnmarshalJSON(data []byte) error {
	var tp string
	if err := json.Unmarshal(data, &tp); err != nil {
		var inner inbound
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		*i = Inbound(inner)
	} else {
		inner, err := parseInbound(tp)
		if err != nil {
			return err
		}
		*i = Inbound(*inner)
	}
	return verifyInbound(i)
}

// MarshalJSON implements encoding/json.Marshaler
func (i *Inbound) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":         string(i.Type),
		"bind-address": i.BindAddress,
	})
}

// TransportKind maps the inbound type onto the transport classification.
func (i *Inbound) TransportKind() TransportKind {
	switch i.Type {
	case InboundTypeTLS:
		return Encrypted
	case InboundTypeUnix:
		return PathBased
	default:
		return Plain
	}
}

func (i *Inbound) Key() string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", i.Type, i.BindAddress)
}

func (i *Inbound) ToAlias() string {
	if i == nil {
		return "<nil>"
	}
	return string(i.Type) + "://" + i.BindAddress
}

func parseInbound(alias string) (*inbound, error) {
	u, err := url.Parse(alias)
	if err != nil {
		return nil, err
	}
	i := &inbound{
		Type:        InboundType(u.Scheme),
		BindAddress: u.Host,
	}
	if u.Scheme == "unix" {
		i.BindAddress = u.Path
	}
	return i, nil
}

func verifyInbound(i *Inbound) error {
	switch strings.ToLower(string(i.Type)) {
	case "http":
		i.Type = InboundTypePlain
	case "https":
		i.Type = InboundTypeTLS
	default:
		i.Type = InboundType(strings.ToLower(string(i.Type)))
	}

	if !supportInboundTypes[i.Type] {
		return fmt.Errorf("not support inbound type: %s", i.Type)
	}

	if i.Type == InboundTypeUnix {
		if i.BindAddress == "" {
			return fmt.Errorf("empty unix inbound socket path")
		}
		return nil
	}

	_, portStr, err := net.SplitHostPort(i.BindAddress)
	if err != nil {
		return fmt.Errorf("parse inbound bind address error, address: %s, error: %w", i.ToAlias(), err)
	}
	if _, err = strconv.ParseUint(portStr, 10, 16); err != nil {
		return fmt.Errorf("invalid inbound bind port, address: %s", i.ToAlias())
	}
	if i.Type == InboundTypeTLS && (i.Certificate == "" || i.PrivateKey == "") {
		return fmt.Errorf("tls inbound requires certificate and private-key, address: %s", i.ToAlias())
	}
	return nil
}
