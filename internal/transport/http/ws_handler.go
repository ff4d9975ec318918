package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

type WSHandler struct {
	service       *app.QuizService
	noticeTimeout time.Duration
	upgrader      websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, noticeTimeout time.Duration) *WSHandler {
	return &WSHandler{
		service:       service,
		noticeTimeout: noticeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type difficultyPayload struct {
	Difficulty string `json:"difficulty"`
}

type startPayload struct {
	CategoryID int `json:"categoryId"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type sessionPayload struct {
	PlayerID string `json:"playerId"`
}

type noticePayload struct {
	Message string `json:"message"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// connection carries the per-socket plumbing shared by the read loop and
// background quiz starts.
type connection struct {
	send   chan outboundMessage[any]
	closed chan struct{}
	acks   chan struct{}
}

func (c *connection) emit(msgType string, payload any) bool {
	select {
	case c.send <- outboundMessage[any]{Type: msgType, Payload: payload}:
		return true
	case <-c.closed:
		return false
	}
}

func (c *connection) emitError(err error) {
	c.emit("error", errorPayload{Message: err.Error()})
}

// noticeNotifier shows the fallback notice and blocks until the client acks.
func (c *connection) noticeNotifier(timeout time.Duration) app.Notifier {
	return app.NotifierFunc(func(ctx context.Context, message string) error {
		// drop acks left over from an earlier notice
		select {
		case <-c.acks:
		default:
		}
		if !c.emit("notice", noticePayload{Message: message}) {
			return errors.New("connection closed")
		}
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-c.acks:
			return nil
		case <-timer.C:
			return errors.New("notice not acknowledged")
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// ServeWS upgrades HTTP requests to websockets and drives one player session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	session := h.service.Open(ctx, playerID)
	views, cancel := session.Subscribe()
	defer h.service.Close(playerID)
	defer cancel()

	c := &connection{
		send:   make(chan outboundMessage[any], 16),
		closed: make(chan struct{}),
		acks:   make(chan struct{}, 1),
	}
	writerDone := make(chan struct{})
	viewsDone := make(chan struct{})
	var background sync.WaitGroup

	go func() {
		defer close(writerDone)
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so emitters never block on a dead socket
				for range c.send {
				}
				return
			}
		}
	}()

	c.emit("session", sessionPayload{PlayerID: session.ID()})

	go func() {
		defer close(viewsDone)
		for {
			select {
			case view, ok := <-views:
				if !ok {
					return
				}
				if !c.emit("view", view) {
					return
				}
			case <-c.closed:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "selectDifficulty":
			var payload difficultyPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				c.emit("error", errorPayload{Message: "invalid difficulty payload"})
				continue
			}
			difficulty, err := domain.ParseDifficulty(payload.Difficulty)
			if err != nil {
				c.emitError(err)
				continue
			}
			if err := session.SelectDifficulty(difficulty); err != nil {
				c.emitError(err)
			}
		case "startQuiz":
			var payload startPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				c.emit("error", errorPayload{Message: "invalid start payload"})
				continue
			}
			// Runs off the read loop so the fallback notice can be acked.
			background.Add(1)
			go func(categoryID int) {
				defer background.Done()
				if err := session.StartQuiz(ctx, categoryID, c.noticeNotifier(h.noticeTimeout)); err != nil {
					c.emitError(err)
				}
			}(payload.CategoryID)
		case "ack":
			select {
			case c.acks <- struct{}{}:
			default:
			}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				c.emit("error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			result, err := session.SubmitAnswer(payload.Answer)
			if errors.Is(err, domain.ErrAnswerAlreadySelected) {
				continue
			}
			if err != nil {
				c.emitError(err)
				continue
			}
			c.emit("answerResult", result)
		case "reset":
			session.Reset()
		case "refresh":
			c.emit("view", session.View())
		default:
			c.emit("error", errorPayload{Message: "unsupported message type"})
		}
	}

	cancelCtx()
	close(c.closed)
	background.Wait()
	<-viewsDone
	close(c.send)
	<-writerDone
}
