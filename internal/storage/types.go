package storage

import "io"

// Supported upload providers
const (
	ProviderW3S  = "w3s"
	ProviderIPFS = "ipfs"
)

// DefaultGatewayDomain is the public gateway that serves web3.storage uploads
const DefaultGatewayDomain = "ipfs.w3s.link"

// Config represents storage configuration
type Config struct {
	Provider      string     `mapstructure:"provider"`
	GatewayDomain string     `mapstructure:"gatewayDomain"`
	TempDir       string     `mapstructure:"tempDir"`
	W3S           W3SConfig  `mapstructure:"w3s"`
	IPFS          IPFSConfig `mapstructure:"ipfs"`
}

// W3SConfig represents web3.storage settings
type W3SConfig struct {
	Token    string `mapstructure:"token"`
	Endpoint string `mapstructure:"endpoint"`
}

// IPFSConfig represents IPFS RPC / pinning endpoint settings
type IPFSConfig struct {
	APIAddress string `mapstructure:"apiAddress"`
	Token      string `mapstructure:"token"`
}

// Object is a single file handed to a provider
type Object struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}
