package config

import (
	"strings"
	"time"

	"github.com/chapool/go-hdpay/internal/util"
	"github.com/rs/zerolog"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

type Management struct {
	ReadinessTimeout        time.Duration
	LivenessTimeout         time.Duration
	ProbeWriteablePathsAbs  []string
	ProbeWriteableTouchfile string
}

type Seed struct {
	EncryptedFile string
	Format        string
	Key           string `json:"-"`
	Passphrase    string `json:"-"`
}

type ChainData struct {
	// EndpointTemplate gets {token} replaced by the per currency access token.
	EndpointTemplate    string
	Timeout             time.Duration
	RequestsPerSecond   int
	BreakerMinRequests  int
	BreakerFailureRatio float64
	BreakerOpenTimeout  time.Duration
}

type Currency struct {
	Symbol          string
	Network         string
	AddressSource   string
	PreferChainData bool

	// ChainDataURL includes the access token and is never printed.
	ChainDataURL        string `json:"-"`
	ChainDataConfigured bool

	NodeURL        string
	NodeUser       string
	NodePassword   string `json:"-"`
	NodeDisableTLS bool
}

type Wallet struct {
	Seed              Seed
	ChainData         ChainData
	Currencies        []Currency
	CurrencyTableFile string
}

// ProbeSeedFile is the seed file the readiness and liveness probes require.
// It is empty when no currency derives addresses from the seed.
func (w Wallet) ProbeSeedFile() string {
	for _, c := range w.Currencies {
		if strings.EqualFold(strings.TrimSpace(c.AddressSource), "hdwallet") {
			return w.Seed.EncryptedFile
		}
	}

	return ""
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management Management
	Wallet     Wallet
}

const defaultEndpointTemplate = "https://go.getblock.io/{token}/"

// DefaultServiceConfigFromEnv returns the server config as parsed from the
// environment, with defaults for unset values.
func DefaultServiceConfigFromEnv() Server {
	chainData := ChainData{
		EndpointTemplate:    util.GetEnv("CHAINDATA_ENDPOINT_TEMPLATE", defaultEndpointTemplate),
		Timeout:             util.GetEnvAsDuration("CHAINDATA_TIMEOUT", 30*time.Second),
		RequestsPerSecond:   util.GetEnvAsInt("CHAINDATA_RPS", 0),
		BreakerMinRequests:  util.GetEnvAsInt("CHAINDATA_BREAKER_MIN_REQUESTS", 10),
		BreakerFailureRatio: util.GetEnvAsFloat("CHAINDATA_BREAKER_FAILURE_RATIO", 0.6),
		BreakerOpenTimeout:  util.GetEnvAsDuration("CHAINDATA_BREAKER_OPEN_TIMEOUT", 30*time.Second),
	}

	symbols := util.GetEnvAsStringArr("ENABLED_CURRENCIES", []string{"BTC", "LTC"})
	currencies := make([]Currency, 0, len(symbols))
	for _, sym := range symbols {
		currencies = append(currencies, currencyFromEnv(strings.ToUpper(sym), chainData.EndpointTemplate))
	}

	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Management: Management{
			ReadinessTimeout:        util.GetEnvAsDuration("SERVER_MANAGEMENT_READINESS_TIMEOUT", 4*time.Second),
			LivenessTimeout:         util.GetEnvAsDuration("SERVER_MANAGEMENT_LIVENESS_TIMEOUT", 9*time.Second),
			ProbeWriteablePathsAbs:  util.GetEnvAsStringArr("SERVER_MANAGEMENT_PROBE_WRITEABLE_PATHS", []string{}),
			ProbeWriteableTouchfile: util.GetEnv("SERVER_MANAGEMENT_PROBE_WRITEABLE_TOUCHFILE", ".healthy"),
		},
		Wallet: Wallet{
			Seed: Seed{
				EncryptedFile: util.GetEnv("HD_WALLET_SEED_ENCRYPTED_FILE", "/app/data/hd_seed.enc"),
				Format:        util.GetEnv("SEED_FORMAT", ""),
				Key:           loadSecretPair("HD_WALLET_ENCRYPTION_KEY"),
				Passphrase:    loadSecretPair("HD_WALLET_PASSPHRASE"),
			},
			ChainData:         chainData,
			Currencies:        currencies,
			CurrencyTableFile: util.GetEnv("CURRENCY_TABLE_FILE", ""),
		},
	}
}

// currencyFromEnv reads the per currency variables of sym. Network falls back
// to GETBLOCK_NETWORK, the access token to GETBLOCK_ACCESS_TOKEN.
func currencyFromEnv(sym string, endpointTemplate string) Currency {
	token := loadSecretPair("GETBLOCK_ACCESS_TOKEN_" + sym)
	if token == "" {
		token = loadSecretPair("GETBLOCK_ACCESS_TOKEN")
	}

	chainDataURL := util.GetEnv(sym+"_CHAINDATA_URL", "")
	if chainDataURL == "" && token != "" {
		chainDataURL = strings.ReplaceAll(endpointTemplate, "{token}", token)
	}

	return Currency{
		Symbol:              sym,
		Network:             firstEnv("mainnet", sym+"_NETWORK", "GETBLOCK_NETWORK"),
		AddressSource:       firstEnv("hdwallet", sym+"_ADDRESS_SOURCE"),
		PreferChainData:     util.GetEnvAsBool(sym+"_USE_GETBLOCK_FOR_BALANCE", false),
		ChainDataURL:        chainDataURL,
		ChainDataConfigured: chainDataURL != "",
		NodeURL:             util.GetEnv(sym+"_RPC_URL", ""),
		NodeUser:            util.GetEnv(sym+"_RPC_USER", ""),
		NodePassword:        loadSecretPair(sym + "_RPC_PASSWORD"),
		NodeDisableTLS:      util.GetEnvAsBool(sym+"_RPC_DISABLE_TLS", false),
	}
}

func firstEnv(defaultVal string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(util.GetEnv(key, "")); val != "" {
			return val
		}
	}

	return defaultVal
}
