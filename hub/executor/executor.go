package executor

import (
	"fmt"
	"os"
	"sync"

	"github.com/portside/httpmeta/adapter/extract"
	"github.com/portside/httpmeta/config"
	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/listener"
	L "github.com/portside/httpmeta/log"
	"github.com/portside/httpmeta/resource"
)

var (
	mux sync.Mutex

	// Table holds every live listener and stream between accept and
	// acquisition, shared with the property extractor.
	Table = resource.NewTable()

	// Extractor may be swapped by an embedder before ApplyConfig to source
	// connections from elsewhere.
	Extractor C.PropertyExtractor = extract.Default{}
)

func readConfig(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("configuration file %s is empty", path)
	}

	return data, err
}

// ParseWithPath parse config with custom config path
func ParseWithPath(path string) (*config.Config, error) {
	buf, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	return config.Parse(buf)
}

// ApplyConfig brings the process in line with cfg.
func ApplyConfig(cfg *config.Config) {
	mux.Lock()
	defer mux.Unlock()

	L.SetLevel(cfg.General.LogLevel)
	listener.ReCreateListeners(cfg.Listeners, Table, Extractor)
}

// Shutdown closes every listener.
func Shutdown() {
	mux.Lock()
	defer mux.Unlock()

	listener.Close()
	L.Infoln("[Main] httpmeta shutting down")
}
