package config

// Version information, set at build time

var Version = "development"
var CommitHash = "development"
var BuildTimestamp = "0000-00-00T00:00:00Z"

// Environment variable prefix used by the env loader

var DefaultNamePrefix = "TINYNOTION_"

// Cookie name

var CSRFCookieName = "tinynotion-csrf"

// Notion OAuth endpoints

const (
	NotionAuthURL       = "https://api.notion.com/v1/oauth/authorize"
	NotionTokenURL      = "https://api.notion.com/v1/oauth/token"
	NotionIntrospectURL = "https://api.notion.com/v1/oauth/introspect"
	NotionRevokeURL     = "https://api.notion.com/v1/oauth/revoke"
)

// Storage keys

const (
	UserStorageKey  = "user"
	TokenStorageKey = "token"
)

func NewDefaultConfiguration() *Config {
	return &Config{
		DatabasePath: "./tinynotion.db",
		Server: ServerConfig{
			Port:    3000,
			Address: "127.0.0.1",
		},
		Notion: NotionConfig{
			AuthURL:       NotionAuthURL,
			TokenURL:      NotionTokenURL,
			IntrospectURL: NotionIntrospectURL,
			RevokeURL:     NotionRevokeURL,
			Timeout:       30,
		},
		Log: LogConfig{
			Level: "info",
			Json:  false,
			Streams: LogStreams{
				HTTP:  LogStreamConfig{Enabled: true},
				App:   LogStreamConfig{Enabled: true},
				Audit: LogStreamConfig{Enabled: false},
			},
		},
		Experimental: ExperimentalConfig{
			ConfigFile: "",
		},
	}
}

// Main app config

type Config struct {
	DatabasePath string             `description:"The path to the database, including file name." yaml:"databasePath"`
	Server       ServerConfig       `description:"Server configuration." yaml:"server"`
	Notion       NotionConfig       `description:"Notion OAuth configuration." yaml:"notion"`
	Log          LogConfig          `description:"Logging configuration." yaml:"log"`
	Experimental ExperimentalConfig `description:"Experimental features, use with caution." yaml:"experimental"`
}

type ServerConfig struct {
	Port         int    `description:"The port on which the server listens." yaml:"port"`
	Address      string `description:"The address on which the server listens." yaml:"address"`
	SecureCookie bool   `description:"Set the secure flag on the CSRF cookie." yaml:"secureCookie"`
}

type NotionConfig struct {
	ClientID         string `description:"OAuth client ID of the Notion integration." yaml:"clientId"`
	ClientSecret     string `description:"OAuth client secret of the Notion integration." yaml:"clientSecret"`
	ClientSecretFile string `description:"Path to a file containing the OAuth client secret." yaml:"clientSecretFile"`
	RedirectURL      string `description:"Redirect URL registered with the Notion integration." yaml:"redirectUrl"`
	AuthURL          string `description:"Notion authorization endpoint." yaml:"authUrl"`
	TokenURL         string `description:"Notion token endpoint." yaml:"tokenUrl"`
	IntrospectURL    string `description:"Notion token introspection endpoint." yaml:"introspectUrl"`
	RevokeURL        string `description:"Notion token revocation endpoint." yaml:"revokeUrl"`
	Timeout          int    `description:"Timeout in seconds for requests to Notion." yaml:"timeout"`
}

type LogConfig struct {
	Level   string     `description:"Log level (trace, debug, info, warn, error)." yaml:"level"`
	Json    bool       `description:"Enable JSON formatted logs." yaml:"json"`
	Streams LogStreams `description:"Configuration for specific log streams." yaml:"streams"`
}

type LogStreams struct {
	HTTP  LogStreamConfig `description:"HTTP request logging." yaml:"http"`
	App   LogStreamConfig `description:"Application logging." yaml:"app"`
	Audit LogStreamConfig `description:"Audit logging." yaml:"audit"`
}

type LogStreamConfig struct {
	Enabled bool   `description:"Enable this log stream." yaml:"enabled"`
	Level   string `description:"Log level for this stream. Use global if empty." yaml:"level"`
}

type ExperimentalConfig struct {
	ConfigFile string `description:"Path to config file." yaml:"-"`
}

// API queries

type AuthorizeQuery struct {
	ClientID     string `url:"client_id"`
	ResponseType string `url:"response_type"`
	Owner        string `url:"owner"`
	RedirectURI  string `url:"redirect_uri"`
	State        string `url:"state,omitempty"`
}
