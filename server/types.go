package server

// Config holds the server-side configuration parameters.
type Config struct {
	ListenAddr string // TCP bind address, e.g. "127.0.0.1:8080"
	BufferSize int    // per-session line buffer capacity in bytes
	Backlog    int    // listen(2) backlog
	ServerName string // value of the injected Server header
	Debug      bool   // verbose error reports (full stack traces) on stderr
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":8080",
		BufferSize: 2048,
		Backlog:    16,
		ServerName: "nioserve",
		Debug:      false,
	}
}
