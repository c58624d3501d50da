package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults for the network-facing knobs. Credentials have no defaults on
// purpose: the process refuses to start without them.
const (
	DefaultPort        = 3001
	DefaultDataURL     = "https://nodejs-2-i1dr.onrender.com/api/voters/"
	DefaultProviderURL = "https://waba.xtendonline.com"
	DefaultUpdateURL   = "https://xtend.online/Voter/update_mobile.php"
	DefaultStrategy    = "failover"
)

type Config struct {
	Port             int
	DataEndpoints    []string
	Strategy         string
	GatewayEndpoints []string
	ProviderBaseURL  string
	UpdateURL        string
	PhoneNumberID    string
	APIKey           string
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var dataList, gatewayList string

	fs := flag.NewFlagSet("voter-search", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&dataList, "data", "", "Comma-separated voter data endpoints")
	fs.StringVar(&cfg.Strategy, "strategy", "", "Endpoint selection strategy (failover, round-robin, random)")
	fs.StringVar(&gatewayList, "gateways", "", "Comma-separated message gateway endpoints")
	fs.StringVar(&cfg.ProviderBaseURL, "provider", "", "WhatsApp provider base URL")
	fs.StringVar(&cfg.UpdateURL, "update", "", "Remote field-update endpoint")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.PhoneNumberID, "phone-number-id", "", "WhatsApp phone number ID (prefer env)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "WhatsApp API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if dataList == "" {
		dataList = os.Getenv("DATA_ENDPOINTS")
	}
	if dataList == "" {
		dataList = DefaultDataURL
	}
	cfg.DataEndpoints = splitList(dataList)

	if cfg.Strategy == "" {
		cfg.Strategy = os.Getenv("LOAD_STRATEGY")
	}
	if cfg.Strategy == "" {
		cfg.Strategy = DefaultStrategy
	}
	switch cfg.Strategy {
	case "failover", "round-robin", "random":
	default:
		return Config{}, fmt.Errorf("invalid strategy %q (want failover, round-robin, or random)", cfg.Strategy)
	}

	if gatewayList == "" {
		gatewayList = os.Getenv("GATEWAY_ENDPOINTS")
	}
	if gatewayList == "" {
		// The in-process gateway handler is the first candidate; a separately
		// started forwarding server on the same host is the fallback.
		gatewayList = fmt.Sprintf("http://localhost:%d/api/whatsapp-send", cfg.Port)
	}
	cfg.GatewayEndpoints = splitList(gatewayList)

	if cfg.ProviderBaseURL == "" {
		cfg.ProviderBaseURL = os.Getenv("WHATSAPP_PROVIDER_URL")
	}
	if cfg.ProviderBaseURL == "" {
		cfg.ProviderBaseURL = DefaultProviderURL
	}

	if cfg.UpdateURL == "" {
		cfg.UpdateURL = os.Getenv("UPDATE_URL")
	}
	if cfg.UpdateURL == "" {
		cfg.UpdateURL = DefaultUpdateURL
	}

	// Secrets - MUST be provided, no embedded fallback
	if cfg.PhoneNumberID == "" {
		cfg.PhoneNumberID = os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	}
	if cfg.PhoneNumberID == "" {
		return Config{}, errors.New("WHATSAPP_PHONE_NUMBER_ID required")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("WHATSAPP_API_KEY")
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("WHATSAPP_API_KEY required")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
