// Package serverstatus queries the server list ping of a Minecraft server.
package serverstatus

import (
	"encoding/json"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Tnze/go-mc/bot"
	"github.com/Tnze/go-mc/chat"
	"github.com/pkg/errors"

	"github.com/minepkg/assetguard/internals/merrors"
)

// DefaultPort is used when the address has none
const DefaultPort = 25565

// Timeout bounds a single status query
const Timeout = 2500 * time.Millisecond

// Status of a server. Offline servers only have Online set
type Status struct {
	Online        bool
	Version       string
	Protocol      int
	MOTD          string
	OnlinePlayers int
	MaxPlayers    int
	Latency       time.Duration
}

type pingResponse struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description chat.Message `json:"description"`
}

// NormalizeAddress appends the default port if address has none
func NormalizeAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", errors.New("empty server address")
	}
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		// no port
		return net.JoinHostPort(address, strconv.Itoa(DefaultPort)), nil
	}
	if port == "" {
		port = strconv.Itoa(DefaultPort)
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", errors.Errorf("invalid port %q", port)
	}
	return net.JoinHostPort(host, port), nil
}

// Get queries the status of the server at address ("host" or "host:port").
// Unreachable servers return an error wrapping [merrors.ErrTransport]
func Get(address string) (*Status, error) {
	addr, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	resp, latency, err := bot.PingAndListTimeout(addr, Timeout)
	if err != nil {
		return nil, errors.Wrapf(merrors.ErrTransport, "ping %s: %v", addr, err)
	}
	status, err := parse(resp)
	if err != nil {
		return nil, err
	}
	status.Latency = latency
	return status, nil
}

func parse(resp []byte) (*Status, error) {
	var r pingResponse
	if err := json.Unmarshal(resp, &r); err != nil {
		return nil, errors.Wrap(merrors.ErrFormat, err.Error())
	}
	return &Status{
		Online:        true,
		Version:       r.Version.Name,
		Protocol:      r.Version.Protocol,
		MOTD:          strings.TrimSpace(r.Description.ClearString()),
		OnlinePlayers: r.Players.Online,
		MaxPlayers:    r.Players.Max,
	}, nil
}
