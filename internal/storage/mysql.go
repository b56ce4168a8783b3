package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Shugur-Network/podreader/internal/config"
	"github.com/Shugur-Network/podreader/internal/constants"
	"github.com/Shugur-Network/podreader/internal/domain"
	"github.com/Shugur-Network/podreader/internal/logger"
	"github.com/Shugur-Network/podreader/internal/metrics"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// ErrConnect marks a failure to establish the MySQL connection. It is the only
// database failure the page renders; everything after connecting is a fault.
var ErrConnect = errors.New("mysql connect failed")

// ConnectError carries the driver's description of why connecting failed.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string { return e.Err.Error() }

func (e *ConnectError) Unwrap() error { return e.Err }

// Is lets callers test with errors.Is(err, ErrConnect).
func (e *ConnectError) Is(target error) bool { return target == ErrConnect }

// MySQLDialer opens a dedicated connection per call. Nothing is pooled or
// reused between calls.
type MySQLDialer struct {
	Port        int
	DialTimeout time.Duration
	logger      *zap.Logger
}

var (
	_ domain.Dialer = (*MySQLDialer)(nil)
	_ mysql.Logger  = driverLogger{}
)

// NewMySQLDialer builds a dialer from the database settings. The port is
// always 3306.
func NewMySQLDialer(cfg config.DatabaseConfig) *MySQLDialer {
	return &MySQLDialer{
		Port:        constants.MySQLPort,
		DialTimeout: cfg.DialTimeout,
		logger:      logger.New("storage"),
	}
}

// DriverConfig maps connection parameters onto a go-sql-driver config.
func (d *MySQLDialer) DriverConfig(params config.ConnectionParams) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = params.Username
	cfg.Passwd = params.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(params.Host, strconv.Itoa(d.Port))
	cfg.DBName = params.Database
	cfg.Timeout = d.DialTimeout
	cfg.Logger = driverLogger{l: d.logger}
	return cfg
}

// driverLogger routes the driver's own packet and connection warnings into
// zap instead of the standard log package.
type driverLogger struct {
	l *zap.Logger
}

func (dl driverLogger) Print(v ...any) {
	dl.l.Warn("MySQL driver", zap.String("detail", strings.TrimSpace(fmt.Sprint(v...))))
}

// Dial connects and authenticates. Failures are returned as *ConnectError.
func (d *MySQLDialer) Dial(ctx context.Context, params config.ConnectionParams) (domain.MessageStore, error) {
	return d.dial(ctx, params)
}

func (d *MySQLDialer) dial(ctx context.Context, params config.ConnectionParams) (*Conn, error) {
	cfg := d.DriverConfig(params)

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		metrics.DBConnections.WithLabelValues("failure").Inc()
		return nil, &ConnectError{Addr: cfg.Addr, Err: err}
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// sql.DB.Conn performs the network dial and the auth handshake.
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = db.Close()
		metrics.DBConnections.WithLabelValues("failure").Inc()
		d.logger.Debug("MySQL connect failed",
			zap.String("addr", cfg.Addr),
			zap.String("database", cfg.DBName),
			zap.Error(err))
		return nil, &ConnectError{Addr: cfg.Addr, Err: err}
	}

	metrics.DBConnections.WithLabelValues("success").Inc()
	d.logger.Debug("MySQL connected",
		zap.String("addr", cfg.Addr),
		zap.String("database", cfg.DBName))
	return &Conn{db: db, conn: conn}, nil
}

// Probe connects, pings and disconnects. Used by the readiness check.
func (d *MySQLDialer) Probe(ctx context.Context, params config.ConnectionParams) error {
	c, err := d.dial(ctx, params)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	return nil
}

// Conn is one open MySQL session.
type Conn struct {
	db   *sql.DB
	conn *sql.Conn
}

var _ domain.MessageStore = (*Conn)(nil)

// Messages runs the fixed read query. Rows are streamed, not buffered.
func (c *Conn) Messages(ctx context.Context) (domain.MessageCursor, error) {
	rows, err := c.conn.QueryContext(ctx, constants.MessagesQuery)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	return newRowCursor(rows), nil
}

// Close releases the session and the underlying network connection.
func (c *Conn) Close() error {
	connErr := c.conn.Close()
	dbErr := c.db.Close()
	return errors.Join(connErr, dbErr)
}
