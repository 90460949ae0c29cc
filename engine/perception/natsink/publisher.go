package natsink

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"
	"github.com/tutumagi/perception/config"
	"github.com/tutumagi/perception/engine/math32"
	"github.com/tutumagi/perception/engine/perception/sight"
	"github.com/tutumagi/perception/logger"
	"go.uber.org/zap"
)

// ErrNotConnected 连接已经关闭
var ErrNotConnected = errors.New("natsink: not connected")

// Message 发到 nats 的视觉事件
type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Observer  uint32         `json:"observer"`
	Target    string         `json:"target"`
	Strength  float32        `json:"strength"`
	Location  math32.Vector3 `json:"location"`
	Timestamp int64          `json:"timestamp"`
}

// NewMessage 由视觉事件生成消息
func NewMessage(e sight.Event, now time.Time) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      e.Type.String(),
		Observer:  uint32(e.ObserverID),
		Target:    string(e.TargetID),
		Strength:  e.Strength,
		Location:  e.Location,
		Timestamp: now.UnixNano() / int64(time.Millisecond),
	}
}

// Subject 事件发布的 subject，<prefix>.<GainedSight|LostSight>
func Subject(prefix string, t sight.EventType) string {
	return fmt.Sprintf("%s.%s", prefix, t)
}

// Publisher 把视觉事件发布到 nats
type Publisher struct {
	conn    *nats.Conn
	subject string
	clock   func() time.Time
}

// NewPublisher 读取 perception.events.nats.* 配置并连接
func NewPublisher(cfg *config.Config) (*Publisher, error) {
	url := cfg.GetString("perception.events.nats.url")
	conn, err := nats.Connect(url,
		nats.Timeout(cfg.GetDuration("perception.events.nats.connectiontimeout")),
		nats.MaxReconnects(cfg.GetInt("perception.events.nats.maxreconnectionretries")),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("natsink disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("natsink reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Warn("natsink connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("natsink: connect %s: %w", url, err)
	}
	return NewPublisherWithConn(conn, cfg.GetString("perception.events.nats.subject")), nil
}

// NewPublisherWithConn 使用已有的连接
func NewPublisherWithConn(conn *nats.Conn, subject string) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: subject,
		clock:   time.Now,
	}
}

// Publish 发布一批事件，出错的事件跳过，返回第一个错误
func (p *Publisher) Publish(events []sight.Event) error {
	if p.conn == nil || p.conn.IsClosed() {
		return ErrNotConnected
	}
	var first error
	now := p.clock()
	for _, e := range events {
		data, err := json.Marshal(NewMessage(e, now))
		if err == nil {
			err = p.conn.Publish(Subject(p.subject, e.Type), data)
		}
		if err != nil {
			logger.Warn("natsink publish failed", zap.Stringer("event", e), zap.Error(err))
			if first == nil {
				first = fmt.Errorf("natsink: publish: %w", err)
			}
		}
	}
	return first
}

// Flush 等待服务器确认收到所有消息
func (p *Publisher) Flush(timeout time.Duration) error {
	if p.conn == nil || p.conn.IsClosed() {
		return ErrNotConnected
	}
	return p.conn.FlushTimeout(timeout)
}

// Close 发完缓冲的消息后关闭连接
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		logger.Warn("natsink drain failed", zap.Error(err))
		p.conn.Close()
	}
}
