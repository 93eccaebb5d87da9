package main

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120 // move events arrive at client frame rate
)

// Client represents one WebSocket connection. Its id doubles as the
// player id for whatever room it joins.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	id         string
	room       string // current room id, "" while not joined
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
	// Auth state
	authID   int64 // 0 = guest
	authName string
}

// NewClient creates a new Client with a fresh connection id
func NewClient(hub *Hub, conn *websocket.Conn, id, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		id:         id,
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 0xFF prefix marks frames queued by SendBinary
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with a 0xFF marker byte so WritePump can distinguish from
// text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) sendError(code, msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Code: code, Msg: msg}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendError(CodeInvalidInput, "malformed message")
		return
	}

	switch env.T {
	case MsgJoinRoom:
		c.handleJoinRoom(env.D)
	case MsgMove:
		c.handleMove(env.D)
	case MsgFire:
		c.handleFire(env.D)
	case MsgResetPlayer:
		c.handleReset(env.D)
	case MsgRegister:
		c.handleRegister(env.D)
	case MsgLogin:
		c.handleLogin(env.D)
	case MsgAuth:
		c.handleAuth(env.D)
	case MsgProfile:
		c.handleProfile()
	}
}

func (c *Client) handleJoinRoom(data json.RawMessage) {
	var msg JoinRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(CodeInvalidInput, "malformed join payload")
		return
	}
	// c.room can be stale: a lethal hit removes the player from the
	// room without touching the connection. The registry is the ground
	// truth for membership.
	if c.room != "" {
		if room := c.hub.registry.Room(c.room); room != nil && room.HasPlayer(c.id) {
			c.sendError(CodeInvalidInput, "already in a room")
			return
		}
		c.room = ""
	}

	name := msg.Name
	if name == "" && c.authName != "" {
		name = c.authName
	}

	_, err := c.hub.registry.AddPlayer(msg.Room, c.id, name, c.authID, c)
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.sendError(CodeInvalidInput, "name and room must be 1-20 characters")
	case errors.Is(err, ErrCapacityExceeded):
		c.sendError(CodeCapacityExceeded, "room is full")
	case err == nil:
		c.room = msg.Room
	}
}

func (c *Client) handleMove(data json.RawMessage) {
	if c.room == "" {
		return
	}
	var msg MoveMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Room != c.room {
		return
	}
	room := c.hub.registry.Room(c.room)
	if room == nil {
		return
	}
	if err := room.Move(c.id, msg.Position); err != nil {
		c.sendError(CodeInvalidMovement, "move rejected")
	}
}

func (c *Client) handleFire(data json.RawMessage) {
	if c.room == "" {
		return
	}
	var msg FireMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Room != c.room {
		return
	}
	room := c.hub.registry.Room(c.room)
	if room == nil {
		return
	}
	room.Fire(c.id, msg.Direction)
}

func (c *Client) handleReset(data json.RawMessage) {
	if c.room == "" {
		return
	}
	var msg ResetMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Room != c.room {
		return
	}
	room := c.hub.registry.Room(c.room)
	if room == nil {
		return
	}
	room.ResetPlayer(c.id)
}

func (c *Client) handleRegister(data json.RawMessage) {
	var msg RegisterMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Register(msg.Username, msg.Password)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Code: CodeInvalidInput, Msg: err.Error()}})
		return
	}
	c.authID = id
	c.authName = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: msg.Username, PlayerID: id}})
}

func (c *Client) handleLogin(data json.RawMessage) {
	var msg LoginMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, token, err := c.hub.auth.Login(msg.Username, msg.Password, c.remoteAddr)
	if err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Code: CodeInvalidInput, Msg: err.Error()}})
		return
	}
	c.authID = id
	c.authName = msg.Username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: token, Username: msg.Username, PlayerID: id}})
}

func (c *Client) handleAuth(data json.RawMessage) {
	var msg AuthMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	id, username, err := c.hub.auth.ValidateToken(msg.Token)
	if err != nil {
		c.sendError(CodeInvalidInput, "invalid token")
		return
	}
	c.authID = id
	c.authName = username
	c.SendJSON(Envelope{T: MsgAuthOK, Data: AuthOKMsg{Token: msg.Token, Username: username, PlayerID: id}})
}

func (c *Client) handleProfile() {
	if c.authID == 0 {
		c.sendError(CodeInvalidInput, "not authenticated")
		return
	}
	kills, wins, ok := c.hub.accounts.Stats(c.authID)
	if !ok {
		c.sendError(CodeInvalidInput, "profile not found")
		return
	}
	c.SendJSON(Envelope{T: MsgProfileData, Data: ProfileDataMsg{
		Username: c.authName,
		Kills:    kills,
		Wins:     wins,
	}})
}
