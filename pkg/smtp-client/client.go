package smtp_client

import (
	"crypto/tls"
	"errors"
	"log/slog"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/knadh/smtppool"
)

// SmtpClients maintains one connection pool per configured server and
// distributes outgoing mail over them round robin.
type SmtpClients struct {
	servers SmtpServerList
	pools   []*smtppool.Pool
	counter uint64
}

func NewSmtpClients(config SmtpServerList) (*SmtpClients, error) {
	pools := openPools(config)
	if len(pools) < 1 {
		return nil, errors.New("could not connect to any configured smtp server")
	}
	return &SmtpClients{
		servers: config,
		pools:   pools,
	}, nil
}

func openPools(serverList SmtpServerList) []*smtppool.Pool {
	pools := []*smtppool.Pool{}
	for _, server := range serverList.Servers {
		pool, err := openPool(server)
		if err != nil {
			slog.Error("error setting up smtp connection pool", slog.String("server", server.Address()), slog.String("error", err.Error()))
			continue
		}
		pools = append(pools, pool)
	}
	return pools
}

func openPool(server SmtpServer) (*smtppool.Pool, error) {
	port, err := strconv.Atoi(server.Port)
	if err != nil {
		return nil, err
	}

	var auth smtp.Auth
	if server.AuthData.Username != "" || server.AuthData.Password != "" {
		auth = smtp.PlainAuth("", server.AuthData.Username, server.AuthData.Password, server.Host)
	}

	return smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            port,
		MaxConns:        server.Connections,
		Auth:            auth,
		IdleTimeout:     time.Duration(server.SendTimeoutSec) * time.Second,
		PoolWaitTimeout: time.Duration(server.SendTimeoutSec) * time.Second,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: server.InsecureSkipVerify,
			ServerName:         server.Host,
		},
	})
}

func (sc *SmtpClients) SendMail(to []string, subject string, htmlContent string, overrides *HeaderOverrides) error {
	if len(sc.pools) < 1 {
		sc.pools = openPools(sc.servers)
		if len(sc.pools) < 1 {
			return errors.New("no smtp server available")
		}
	}

	sc.counter++
	index := int(sc.counter % uint64(len(sc.pools)))

	from := sc.servers.From
	sender := sc.servers.Sender
	replyTo := sc.servers.ReplyTo
	if overrides != nil {
		if overrides.From != "" {
			from = overrides.From
		}
		if overrides.Sender != "" {
			sender = overrides.Sender
		}
		if overrides.NoReplyTo {
			replyTo = []string{}
		} else if len(overrides.ReplyTo) > 0 {
			replyTo = overrides.ReplyTo
		}
	}

	msg := smtppool.Email{
		To:      to,
		From:    from,
		Sender:  sender,
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    []byte(htmlContent),
		Headers: textproto.MIMEHeader{},
	}

	err := sc.pools[index].Send(msg)
	if err != nil {
		slog.Error("error when trying to send email", slog.String("error", err.Error()))

		// refresh the failed pool so the next attempt gets a clean connection
		pool, errReconnect := openPool(sc.servers.Servers[index])
		if errReconnect != nil {
			slog.Error("cannot reconnect smtp pool", slog.String("server", sc.servers.Servers[index].Host), slog.String("error", errReconnect.Error()))
		} else {
			sc.pools[index] = pool
		}
	}
	return err
}
