package connectionhub

import (
	"sync"

	wsmodels "quotation-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID string, isManager bool, conn Conn)
	DeleteClient(userID string, conn Conn)
	SendMessage(msg wsmodels.ServerMessage)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = NewHub()
}

func NewHub() Provider {
	return &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession //map[userID]
}

// DeleteClient удаляет сессию только если она принадлежит conn, после переподключения
// закрытие старого соединения не трогает новую сессию
func (i *impl) DeleteClient(userID string, conn Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	ok = ok && sess.conn == conn
	if ok {
		delete(i.clients, userID)
	}
	i.mu.Unlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) AddClient(userID string, isManager bool, conn Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = newSession(conn, isManager)
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
}

// SendMessage адресату и, при ToManagers, всем подключенным менеджерам
func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for userID, sess := range i.clients {
		if userID == msg.ToUserID || (msg.ToManagers && sess.isManager) {
			if !sess.push(msg) {
				log.WithField("user_id", userID).Warn("очередь сообщений переполнена, событие пропущено")
			}
		}
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.clients[userID]
	return ok
}
