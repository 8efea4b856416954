package listener

import (
	"sync"

	"github.com/samber/lo"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/listener/httpd"
	"github.com/portside/httpmeta/log"
	"github.com/portside/httpmeta/resource"
)

var (
	inbounds = map[string]C.Inbound{}
	servers  = map[string]*httpd.Server{}

	// lock for recreate function
	inboundsMux sync.Mutex
)

// ReCreateListeners reconciles the running servers against ins: servers
// whose inbound disappeared are closed, new inbounds are brought up, and
// unchanged ones are left alone so their listen properties stay valid.
func ReCreateListeners(ins []C.Inbound, table *resource.Table, ex C.PropertyExtractor) {
	inboundsMux.Lock()
	defer inboundsMux.Unlock()

	keep := lo.SliceToMap(ins, func(in C.Inbound) (string, C.Inbound) {
		return in.Key(), in
	})

	for key, server := range servers {
		if _, ok := keep[key]; ok {
			continue
		}
		if err := server.Close(); err != nil {
			in := inbounds[key]
			log.Warnln("[Listener] close %s error: %s", in.ToAlias(), err.Error())
		}
		delete(servers, key)
		delete(inbounds, key)
		log.Infoln("[Listener] %s closed", key)
	}

	for key, in := range keep {
		if _, ok := servers[key]; ok {
			continue
		}
		server, err := httpd.New(in, table, ex)
		if err != nil {
			log.Errorln("[Listener] create %s error: %s", in.ToAlias(), err.Error())
			continue
		}
		servers[key] = server
		inbounds[key] = in
		log.Infoln("[Listener] %s listening at: %s", in.ToAlias(), server.Address())
	}
}

// GetInbounds returns the inbounds currently served.
func GetInbounds() []C.Inbound {
	inboundsMux.Lock()
	defer inboundsMux.Unlock()
	return lo.Values(inbounds)
}

// Snapshot returns the listen properties per inbound alias.
func Snapshot() map[string]C.ListenProperties {
	inboundsMux.Lock()
	defer inboundsMux.Unlock()

	snapshot := make(map[string]C.ListenProperties, len(servers))
	for key, server := range servers {
		in := inbounds[key]
		snapshot[in.ToAlias()] = server.Props()
	}
	return snapshot
}

// Close shuts every server down.
func Close() {
	inboundsMux.Lock()
	defer inboundsMux.Unlock()

	for key, server := range servers {
		_ = server.Close()
		delete(servers, key)
		delete(inbounds, key)
	}
}
