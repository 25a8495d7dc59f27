package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/APRSCN/aprspos"
)

// Types is a ENUM type for client type
type Types string

const (
	Fullfeed Types = "fullfeed"
	Filtered Types = "filtered"
)

const (
	// DefaultHost is the APRS-IS rotation address
	DefaultHost = "rotate.aprs2.net"
	// DefaultPort is the APRS-IS user-defined filter port
	DefaultPort = 10152

	defaultHeartbeat = 5 * time.Minute
	dialTimeout      = 30 * time.Second
)

// Client receives lines from an APRS-IS server
type Client struct {
	Callsign  string `json:"callsign"`
	passcode  string
	Filter    string `json:"filter"`
	Type      Types  `json:"type"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	logger    aprspos.Logger
	handler   func(line string)
	drop      *LineFilter
	software  string
	version   string
	heartbeat time.Duration

	mu   sync.Mutex
	conn net.Conn
}

// Option provides a basic option type
type Option func(*Client)

// WithLogger sets default logger to custom
func WithLogger(logger aprspos.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHandler sets the function every packet line is passed to
func WithHandler(handler func(line string)) Option {
	return func(c *Client) {
		c.handler = handler
	}
}

// WithSoftwareAndVersion sets default software name and version to custom
func WithSoftwareAndVersion(software string, version string) Option {
	return func(c *Client) {
		c.software = software
		c.version = version
	}
}

// WithFilter sets a server side filter, it turns the client into a filtered one
func WithFilter(filter string) Option {
	return func(c *Client) {
		c.Filter = filter
		if filter != "" {
			c.Type = Filtered
		}
	}
}

// WithLineFilter drops matching lines before they reach the handler
func WithLineFilter(f *LineFilter) Option {
	return func(c *Client) {
		c.drop = f
	}
}

// WithHeartbeat changes the keepalive interval
func WithHeartbeat(interval time.Duration) Option {
	return func(c *Client) {
		c.heartbeat = interval
	}
}

// NewClient creates a new APRS-IS client
func NewClient(callsign string, passcode string, host string, port int, options ...Option) *Client {
	client := &Client{
		Callsign:  callsign,
		passcode:  passcode,
		Type:      Fullfeed,
		Host:      host,
		Port:      port,
		software:  aprspos.Name,
		version:   aprspos.Version,
		heartbeat: defaultHeartbeat,
		logger:    aprspos.NewLogger(),
	}

	if callsign == "" {
		client.Callsign = "N0CALL"
	}
	if host == "" {
		client.Host = DefaultHost
	}
	if port == 0 {
		client.Port = DefaultPort
	}

	client.handler = client.logPacket

	for _, option := range options {
		option(client)
	}

	return client
}

// Run connects, logs in and passes lines to the handler until the server
// closes the connection or ctx is done. There is no reconnect.
func (c *Client) Run(ctx context.Context) error {
	address := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	defer c.Close()

	c.logger.Info(aprspos.Fields{"address": address}, "Connected to APRS-IS")

	if err := c.login(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		c.Close()
	}()
	go c.heartBeat(ctx)

	err = ScanLines(ctx, conn, c.logger, c.dispatch)
	if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
		return ctx.Err()
	}
	if err == nil {
		c.logger.Warn(nil, "Server closed the connection")
	}
	return err
}

// LoginLine builds the APRS-IS login command
func (c *Client) LoginLine() string {
	line := "user " + c.Callsign
	if c.passcode != "" {
		line += " pass " + c.passcode
	}
	line += fmt.Sprintf(" vers %s %s", c.software, c.version)
	if c.Type != Fullfeed && c.Filter != "" {
		line += " filter " + c.Filter
	}
	return line
}

// login sends the login command
func (c *Client) login() error {
	if err := c.SendPacket(c.LoginLine()); err != nil {
		return err
	}

	if aprspos.VerifyPasscode(c.Callsign, c.passcode) {
		c.logger.Info(aprspos.Fields{"callsign": c.Callsign}, "Logged in")
	} else {
		c.logger.Warn(aprspos.Fields{"callsign": c.Callsign}, "Logged in unverified, receive only")
	}
	return nil
}

// dispatch hands a line to the handler unless the line filter drops it
func (c *Client) dispatch(line string) {
	if c.drop != nil && c.drop.Match(line) {
		c.logger.Debug(aprspos.Fields{"line": line}, "Dropped by line filter")
		return
	}
	c.handler(line)
}

// logPacket is the default handler
func (c *Client) logPacket(line string) {
	c.logger.Info(aprspos.Fields{"raw": line}, "APRS packet")
}

// SendPacket writes one line to the server
func (c *Client) SendPacket(packet string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return net.ErrClosed
	}

	if _, err := io.WriteString(conn, packet+"\r\n"); err != nil {
		c.logger.Error(nil, "Error sending packet:", err)
		return err
	}

	c.logger.Debug(aprspos.Fields{"packet": packet}, "Sent packet")
	return nil
}

// heartBeat sends a comment line to keep the connection alive
func (c *Client) heartBeat(ctx context.Context) {
	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			_ = c.SendPacket(fmt.Sprintf("# %s keepalive %d", c.software, t.Unix()))
		}
	}
}

// Close closes the connection, it is safe to call more than once
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		c.logger.Error(nil, "Error closing connection", err)
	}
	c.conn = nil
	c.logger.Info(nil, "Client closed")
}
