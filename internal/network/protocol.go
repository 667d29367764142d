package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeSubmit = "submit"
	MsgTypePing   = "ping"
)

// Message types - Server → Client
const (
	MsgTypeState    = "state"
	MsgTypeRejected = "rejected"
	MsgTypeError    = "error"
	MsgTypePong     = "pong"
)

// Game names carried in StatePayload.Game
const (
	GameHats  = "hats"
	GameTiles = "tiles"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// --- Shared Payloads ---

// ActionPayload is one player action, offered by the server or submitted
type ActionPayload struct {
	ID          string `json:"id,omitempty"`
	Kind        string `json:"kind"` // "place", "mark", "pass"
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Orientation int    `json:"orientation"`
	Spot        string `json:"spot,omitempty"`
}

// --- Server Message Payloads ---

// StatePayload is a full authoritative snapshot, sent on every change
type StatePayload struct {
	Game         string            `json:"game"`
	Turn         string            `json:"turn"`
	Phase        string            `json:"phase"` // "place", "secondary", anything else waits
	ActivePlayer string            `json:"active_player"`
	Legal        []ActionPayload   `json:"legal"`
	Hats         *HatBoardPayload  `json:"hats,omitempty"`
	Tiles        *TileBoardPayload `json:"tiles,omitempty"`
}

// HatBoardPayload is the hex board of the hats game
type HatBoardPayload struct {
	Pieces  []PiecePayload     `json:"pieces"`
	Cells   []CellStatePayload `json:"cells,omitempty"`
	Markers []MarkerPayload    `json:"markers,omitempty"`
}

// PiecePayload is a committed hat
type PiecePayload struct {
	Owner       string `json:"owner"`
	Orientation int    `json:"orientation"`
	Q           int    `json:"q"`
	R           int    `json:"r"`
}

// CellStatePayload is the state of a non-empty hex
type CellStatePayload struct {
	Q     int    `json:"q"`
	R     int    `json:"r"`
	State string `json:"state"` // "terminal", "contested"
}

// MarkerPayload is a claim marker on a hex
type MarkerPayload struct {
	Q     int    `json:"q"`
	R     int    `json:"r"`
	Owner string `json:"owner"`
}

// TileBoardPayload is the square board of the tiles game
type TileBoardPayload struct {
	Current string          `json:"current"` // tile type in hand
	Tiles   []TilePayload   `json:"tiles"`
	Regions []RegionPayload `json:"regions"`
}

// TilePayload is a committed tile
type TilePayload struct {
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Type     string            `json:"type"`
	Rotation int               `json:"rotation"`
	Features map[string]string `json:"features,omitempty"` // spot name -> region id
}

// RegionPayload is a connected feature tracked by the server
type RegionPayload struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	Marked    bool             `json:"marked"`
	OpenEdges []EdgeRefPayload `json:"open_edges,omitempty"`
}

// EdgeRefPayload addresses one edge of a placed tile
type EdgeRefPayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Edge string `json:"edge"` // "N" or "N:E"
}

// RejectedPayload reports that the server refused an action
type RejectedPayload struct {
	ActionID string `json:"action_id"`
	Reason   string `json:"reason"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
