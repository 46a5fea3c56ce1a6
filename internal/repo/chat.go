package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Room identifies one of the three fixed chat rooms.
type Room string

const (
	RoomPSG Room = "psg"
	RoomAP  Room = "ap"
	RoomAS  Room = "as"
)

// table maps a room onto its legacy message table.
func (room Room) table() (string, error) {
	switch room {
	case RoomPSG:
		return "psg_chat", nil
	case RoomAP:
		return "ap_chat", nil
	case RoomAS:
		return "as_chat", nil
	}
	return "", fmt.Errorf("unknown chat room %q", room)
}

// Chat provides access to the per-room message tables.
type Chat struct {
	pool *pgxpool.Pool
}

// NewChat creates the repository.
func NewChat(pool *pgxpool.Pool) *Chat {
	return &Chat{pool: pool}
}

// ListMessages returns a room's messages for a school, oldest first.
func (r *Chat) ListMessages(ctx context.Context, room Room, schoolID int64) ([]ChatMessage, error) {
	table, err := room.table()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
        SELECT id, school_id, message, created_at
        FROM %s
        WHERE school_id = $1
        ORDER BY created_at ASC
    `, table)

	rows, err := r.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []ChatMessage{}
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(&m.ID, &m.SchoolID, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// InsertMessage stores a message body (already username-prefixed) and returns the row.
func (r *Chat) InsertMessage(ctx context.Context, room Room, schoolID int64, body string) (ChatMessage, error) {
	table, err := room.table()
	if err != nil {
		return ChatMessage{}, err
	}

	query := fmt.Sprintf(`
        INSERT INTO %s (school_id, message)
        VALUES ($1, $2)
        RETURNING id, school_id, message, created_at
    `, table)

	var m ChatMessage
	err = r.pool.QueryRow(ctx, query, schoolID, body).Scan(&m.ID, &m.SchoolID, &m.Message, &m.CreatedAt)
	return m, err
}

// EncodeChatBody builds the persisted "<username>: <text>" form. The legacy
// schema has no author column, so the author rides inside the body.
func EncodeChatBody(username, text string) string {
	return username + ": " + strings.TrimSpace(text)
}

// SplitChatBody undoes EncodeChatBody on the first ": " separator. Bodies
// without a separator are treated as authorless.
func SplitChatBody(body string) (username, text string) {
	if idx := strings.Index(body, ": "); idx >= 0 {
		return body[:idx], body[idx+2:]
	}
	return "", body
}
