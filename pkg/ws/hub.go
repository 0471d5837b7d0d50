package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message içe aktarma ilerleme kanalındaki mesaj biçimi
type Message struct {
	Type      string      `json:"type"` // progress | completed | failed | cancelled
	DosyaID   string      `json:"dosyaId"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub bağlı istemcilere JSON mesaj yayını yapar
// Yazmalar tek kilit altında seri yürür; yavaş istemci yayını geciktirebilir.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHub boş bir Hub oluşturur
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS denetimi HTTP katmanında yapılır
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve HTTP isteğini websocket'e yükseltir ve bağlantıyı kaydeder
// Okuma döngüsü yalnızca kopuşu algılamak içindir; istemciden veri beklenmez.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

// Broadcast mesajı bağlı tüm istemcilere gönderir
// Yazılamayan bağlantılar sessizce düşürülür.
func (h *Hub) Broadcast(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("websocket yazma hatası, bağlantı düşürülüyor", zap.Error(err))
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ClientCount bağlı istemci sayısı
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		conn.Close()
		delete(h.conns, conn)
	}
}
