package smtp_client

// SmtpServerList holds the outgoing mail setup: one or more SMTP servers
// plus the default header values applied to every message.
type SmtpServerList struct {
	Servers []SmtpServer `json:"servers" yaml:"servers"`
	From    string       `json:"from" yaml:"from"`
	Sender  string       `json:"sender" yaml:"sender"`
	ReplyTo []string     `json:"reply_to" yaml:"reply_to"`
}

type SmtpServer struct {
	Host               string `json:"host" yaml:"host"`
	Port               string `json:"port" yaml:"port"`
	Connections        int    `json:"connections" yaml:"connections"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	AuthData           struct {
		Username string `json:"user" yaml:"user"`
		Password string `json:"password" yaml:"password"`
	} `json:"auth" yaml:"auth"`
	SendTimeoutSec int `json:"send_timeout" yaml:"send_timeout"`
}

func (s *SmtpServer) Address() string {
	return s.Host + ":" + s.Port
}

// SetUsername overrides the configured SMTP auth username, used to apply
// credentials from the environment instead of the config file.
func (s *SmtpServer) SetUsername(username string) {
	s.AuthData.Username = username
}

// SetPassword overrides the configured SMTP auth password.
func (s *SmtpServer) SetPassword(password string) {
	s.AuthData.Password = password
}

// HeaderOverrides allows a caller to replace the default From, Sender and
// ReplyTo headers for a single message.
type HeaderOverrides struct {
	From      string   `json:"from"`
	Sender    string   `json:"sender"`
	ReplyTo   []string `json:"replyTo"`
	NoReplyTo bool     `json:"noReplyTo"`
}
