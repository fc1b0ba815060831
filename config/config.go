package config

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "qform"

type Config struct {
	Addr           string
	DBUrl          string
	TokenSecret    string
	TokenTTL       time.Duration
	SubmitTokenTTL time.Duration
	Debug          bool
	AdminUser      string
	AdminPassword  string

	Operator  OperatorConfig
	Mail      MailConfig
	Turnstile TurnstileConfig
}

// OperatorConfig holds the site-wide defaults for delivery; values saved in
// the admin settings take precedence.
type OperatorConfig struct {
	AdminEmail   string
	FromEmail    string
	AdminSubject string
	CCEmail      string
	SiteURL      string
	RedirectURL  string
}

type MailConfig struct {
	Driver           string
	Host             string
	Port             int
	Username         string
	Password         string
	Encryption       string
	MailerSendAPIKey string
}

type TurnstileConfig struct {
	Enabled bool
	SiteKey string
	Secret  string
	Mode    string
	Timeout time.Duration
}

// ParseFlags reads flags from args, then QFORM_* environment variables, then
// the optional --config file.
func ParseFlags(args []string) (cfg Config, err error) {
	fs := pflag.NewFlagSet("quick-form", pflag.ContinueOnError)

	fs.String("config", "", "path to a config file (yaml, toml or json)")
	fs.String("host", "0.0.0.0", "listen host name")
	fs.Uint("port", 80, "listen port number")
	fs.String("db-url", "qform.sqlite", "path to SQLite3 DB file")
	fs.Bool("debug", false, "log at DEBUG level")

	fs.String("token-secret", "", "secret key for token signing")
	fs.Duration("token-ttl", 2*time.Minute, "admin access token TTL")
	fs.Duration("submit-token-ttl", 24*time.Hour, "form submission token TTL")
	fs.String("admin-user", "", "bootstrap admin user name")
	fs.String("admin-password", "", "bootstrap admin password")

	fs.String("admin-email", "", "fallback recipient of form submissions")
	fs.String("from-email", "", "sender address of outgoing emails")
	fs.String("admin-subject", "New Form Submission", "default notification subject")
	fs.String("cc-email", "", "';'-separated CC list for test emails")
	fs.String("site-url", "http://localhost", "public site URL")
	fs.String("redirect-url", "", "URL to redirect to after a successful submission")

	fs.String("mail-driver", "log", "mail transport: smtp, mailersend or log")
	fs.String("smtp-host", "", "SMTP server host")
	fs.Int("smtp-port", 587, "SMTP server port")
	fs.String("smtp-user", "", "SMTP user name")
	fs.String("smtp-pass", "", "SMTP password")
	fs.String("smtp-encryption", "tls", "SMTP encryption: ssl, tls or none")
	fs.String("mailersend-api-key", "", "MailerSend API key")

	fs.Bool("turnstile-enabled", false, "verify Turnstile tokens on submission")
	fs.String("turnstile-site-key", "", "Turnstile site key")
	fs.String("turnstile-secret", "", "Turnstile secret key")
	fs.String("turnstile-mode", "managed", "Turnstile widget mode: managed or invisible")
	fs.Duration("turnstile-timeout", 10*time.Second, "Turnstile verification timeout")

	if err = fs.Parse(args); err != nil {
		return
	}

	v := viper.New()
	if err = v.BindPFlags(fs); err != nil {
		return
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("config file: %w", err)
			return
		}
	}

	cfg = Config{
		Addr:           net.JoinHostPort(v.GetString("host"), strconv.Itoa(v.GetInt("port"))),
		DBUrl:          v.GetString("db-url"),
		TokenSecret:    v.GetString("token-secret"),
		TokenTTL:       v.GetDuration("token-ttl"),
		SubmitTokenTTL: v.GetDuration("submit-token-ttl"),
		Debug:          v.GetBool("debug"),
		AdminUser:      v.GetString("admin-user"),
		AdminPassword:  v.GetString("admin-password"),
		Operator: OperatorConfig{
			AdminEmail:   v.GetString("admin-email"),
			FromEmail:    v.GetString("from-email"),
			AdminSubject: v.GetString("admin-subject"),
			CCEmail:      v.GetString("cc-email"),
			SiteURL:      v.GetString("site-url"),
			RedirectURL:  v.GetString("redirect-url"),
		},
		Mail: MailConfig{
			Driver:           v.GetString("mail-driver"),
			Host:             v.GetString("smtp-host"),
			Port:             v.GetInt("smtp-port"),
			Username:         v.GetString("smtp-user"),
			Password:         v.GetString("smtp-pass"),
			Encryption:       v.GetString("smtp-encryption"),
			MailerSendAPIKey: v.GetString("mailersend-api-key"),
		},
		Turnstile: TurnstileConfig{
			Enabled: v.GetBool("turnstile-enabled"),
			SiteKey: v.GetString("turnstile-site-key"),
			Secret:  v.GetString("turnstile-secret"),
			Mode:    v.GetString("turnstile-mode"),
			Timeout: v.GetDuration("turnstile-timeout"),
		},
	}

	err = cfg.validate()
	return
}

func (cfg *Config) validate() error {
	if cfg.TokenSecret == "" {
		return errors.New("missing parameter --token-secret")
	}
	if cfg.SubmitTokenTTL <= 0 {
		return errors.New("--submit-token-ttl must be positive")
	}

	switch cfg.Mail.Encryption {
	case "ssl", "tls":
	case "", "none":
		cfg.Mail.Encryption = ""
	default:
		return fmt.Errorf("invalid --smtp-encryption %q", cfg.Mail.Encryption)
	}

	if cfg.Turnstile.Mode != "invisible" {
		cfg.Turnstile.Mode = "managed"
	}
	if cfg.Turnstile.Timeout <= 0 {
		cfg.Turnstile.Timeout = 10 * time.Second
	}
	return nil
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
