package connectionhub

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn часть websocket соединения, нужная для отправки
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const sendBufferSize = 16

type clientSession struct {
	conn      Conn
	isManager bool

	// исходящие сообщения, буферизованы
	sendCh chan any
	ctx    context.Context
	stop   func()
}

func newSession(conn Conn, isManager bool) clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	once := &sync.Once{}
	sess := clientSession{
		conn:      conn,
		isManager: isManager,
		sendCh:    make(chan any, sendBufferSize),
		ctx:       ctx,
	}
	sess.stop = func() {
		once.Do(cancelFn)
	}
	go sess.startSend()
	return sess
}

func (s clientSession) push(msg any) bool {
	select {
	case <-s.ctx.Done():
		return true
	case s.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (s clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
				continue
			}
			log.Debugf("отправлено сообщение: %+v", msg)
		}
	}
}

func (s clientSession) close() {
	if s.conn == nil {
		return
	}
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	err := s.conn.WriteControl(websocket.CloseMessage, data, time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("не удалось закрыть соединение")
	}
}
