package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

var singletonMutex sync.Mutex

// WebSocketNotificationHub fans order events out to every connection
// listening on a topic. Topics are "orders/<buyer address>".
type WebSocketNotificationHub struct {
	registrationMutex sync.Mutex
	listeners         map[string][]*websocket.Conn
}

func (hub *WebSocketNotificationHub) RegisterListener(topic string, conn *websocket.Conn) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	hub.listeners[topic] = append(hub.listeners[topic], conn)
}

func (hub *WebSocketNotificationHub) UnregisterListener(topic string, conn *websocket.Conn) {
	hub.registrationMutex.Lock()
	defer hub.registrationMutex.Unlock()

	remaining := hub.listeners[topic][:0]
	for _, listener := range hub.listeners[topic] {
		if listener != conn {
			remaining = append(remaining, listener)
		}
	}

	if len(remaining) == 0 {
		delete(hub.listeners, topic)
		return
	}
	hub.listeners[topic] = remaining
}

func (hub *WebSocketNotificationHub) Publish(targetTopic string, event any) {
	hub.registrationMutex.Lock()
	listeners := append([]*websocket.Conn{}, hub.listeners[targetTopic]...)
	hub.registrationMutex.Unlock()

	for _, listener := range listeners {
		_ = listener.WriteJSON(event)
	}
}

var notificationHubSingleton *WebSocketNotificationHub

func NewNotificationHub() *WebSocketNotificationHub {
	singletonMutex.Lock()
	defer singletonMutex.Unlock()

	if notificationHubSingleton == nil {
		notificationHubSingleton = &WebSocketNotificationHub{
			listeners: make(map[string][]*websocket.Conn),
		}
	}

	return notificationHubSingleton
}
