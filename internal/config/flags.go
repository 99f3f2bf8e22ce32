package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver name ("postgres" or "sqlite3")
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-ttl token lifetime (e.g., "1h", "30m")
//	-timezone IANA timezone name (e.g., "UTC")
//	-debug enable verbose error detail in responses
//	-base-path path prefix stripped before route matching
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cors-origin allowed CORS origin
//	-cors-methods allowed CORS methods
//	-cors-headers allowed CORS headers
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenTTL time.Duration
	var timezone string
	var debug bool
	var basePath string
	var requestTimeout time.Duration
	var corsOrigin, corsMethods, corsHeaders string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (postgres, sqlite3)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.DurationVar(&tokenTTL, "token-ttl", 0, "Token lifetime (e.g., 1h, 30m)")
	flag.StringVar(&timezone, "timezone", "", "IANA timezone name")
	flag.BoolVar(&debug, "debug", false, "Verbose error detail in responses")
	flag.StringVar(&basePath, "base-path", "", "Path prefix stripped before matching")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&corsOrigin, "cors-origin", "", "Access-Control-Allow-Origin value")
	flag.StringVar(&corsMethods, "cors-methods", "", "Access-Control-Allow-Methods value")
	flag.StringVar(&corsHeaders, "cors-headers", "", "Access-Control-Allow-Headers value")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenTTL:     tokenTTL,
			Timezone:     timezone,
			Debug:        debug,
			BasePath:     basePath,
		},
		CORS: CORS{
			AllowOrigin:  corsOrigin,
			AllowMethods: corsMethods,
			AllowHeaders: corsHeaders,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
