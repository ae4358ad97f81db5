package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/atlasgrowth/plumbing/internal/db"
)

// Event is one row of the run log with its children attached.
type Event struct {
	ID        int64
	Timestamp int64
	ParentID  sql.NullInt64
	EventType string
	Payload   sql.NullString
	Children  []*Event
}

type options struct {
	maxDepth  int
	noPayload bool
}

func main() {
	var (
		dbPath  string
		eventID int64
		jsonOut bool
		opts    options
	)

	flag.StringVar(&dbPath, "db", envOrDefault("DUMPER_DB_PATH", "./dumper.db"), "SQLite event log path")
	flag.Int64Var(&eventID, "id", 0, "show subtree of a specific event ID (default: latest dump run)")
	flag.IntVar(&opts.maxDepth, "L", 0, "limit display depth (0 = unlimited)")
	flag.BoolVar(&jsonOut, "json", false, "output JSON format")
	flag.BoolVar(&opts.noPayload, "no-payload", false, "hide payload details")
	flag.Parse()

	database, err := sql.Open("sqlite3", dbPath+"?mode=ro&_journal_mode=WAL")
	if err != nil {
		log.Fatalf("[event-tree] open db: %v", err)
	}
	defer database.Close()

	if err := database.Ping(); err != nil {
		log.Fatalf("[event-tree] ping db: %v", err)
	}

	rootID := eventID
	if rootID == 0 {
		rootID, err = db.LatestRunRoot(database)
		if err != nil {
			log.Fatalf("[event-tree] find latest run: %v", err)
		}
	}

	events, err := querySubtree(database, rootID)
	if err != nil {
		log.Fatalf("[event-tree] query subtree: %v", err)
	}

	root := buildTree(events, rootID)
	if root == nil {
		log.Fatalf("[event-tree] event %d not found", rootID)
	}

	if jsonOut {
		err = printJSON(os.Stdout, root, opts)
	} else {
		printTree(os.Stdout, root, "", true, 1, opts)
	}
	if err != nil {
		log.Fatalf("[event-tree] %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// querySubtree loads rootID and all of its descendants in id order.
func querySubtree(database *sql.DB, rootID int64) ([]*Event, error) {
	rows, err := database.Query(`
		WITH RECURSIVE subtree(id) AS (
			SELECT id FROM events WHERE id = ?
			UNION ALL
			SELECT e.id FROM events e JOIN subtree s ON e.parent_id = s.id
		)
		SELECT e.id, e.timestamp, e.parent_id, e.event_type, e.payload
		FROM events e
		WHERE e.id IN (SELECT id FROM subtree)
		ORDER BY e.id ASC
	`, rootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev := &Event{}
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.ParentID, &ev.EventType, &ev.Payload); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// buildTree links each event under its parent and returns the rootID node.
// events must be in id order; a parent always precedes its children.
func buildTree(events []*Event, rootID int64) *Event {
	nodes := make(map[int64]*Event, len(events))
	for _, ev := range events {
		nodes[ev.ID] = ev
		if !ev.ParentID.Valid || ev.ID == rootID {
			continue
		}
		if parent := nodes[ev.ParentID.Int64]; parent != nil {
			parent.Children = append(parent.Children, ev)
		}
	}
	return nodes[rootID]
}

// printTree writes one line per event. The root is unindented.
func printTree(w io.Writer, ev *Event, prefix string, isLast bool, depth int, opts options) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	line := formatEvent(ev, opts.noPayload)
	if depth == 1 {
		fmt.Fprintln(w, line)
	} else {
		fmt.Fprintln(w, prefix+connector+line)
	}

	childPrefix := prefix
	if depth > 1 {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	if opts.maxDepth > 0 && depth >= opts.maxDepth {
		if len(ev.Children) > 0 {
			fmt.Fprintln(w, childPrefix+"└── [...]")
		}
		return
	}

	for i, child := range ev.Children {
		printTree(w, child, childPrefix, i == len(ev.Children)-1, depth+1, opts)
	}
}

// formatEvent renders "[id] time  type  k=v ..." with keys sorted.
func formatEvent(ev *Event, noPayload bool) string {
	ts := time.Unix(ev.Timestamp, 0).UTC().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%d] %s  %s", ev.ID, ts, ev.EventType)

	if noPayload {
		return line
	}
	m := decodePayload(ev)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		line += fmt.Sprintf("  %s=%s", k, formatValue(m[k]))
	}
	return line
}

func decodePayload(ev *Event) map[string]any {
	if !ev.Payload.Valid || ev.Payload.String == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(ev.Payload.String), &m); err != nil {
		return nil
	}
	return m
}

// formatValue prints whole numbers without a fraction and quotes strings
// that are long or contain whitespace.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		if len(val) > 80 {
			return fmt.Sprintf("%q", val[:80]+"...")
		}
		for _, r := range val {
			if r == ' ' || r == '\t' || r == '\n' {
				return fmt.Sprintf("%q", val)
			}
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

type jsonNode struct {
	ID        int64      `json:"id"`
	Timestamp int64      `json:"timestamp"`
	EventType string     `json:"event_type"`
	Payload   any        `json:"payload,omitempty"`
	Children  []jsonNode `json:"children,omitempty"`
}

func (ev *Event) toJSON(depth int, opts options) jsonNode {
	n := jsonNode{ID: ev.ID, Timestamp: ev.Timestamp, EventType: ev.EventType}
	if m := decodePayload(ev); m != nil && !opts.noPayload {
		n.Payload = m
	}
	if opts.maxDepth > 0 && depth >= opts.maxDepth {
		return n
	}
	for _, child := range ev.Children {
		n.Children = append(n.Children, child.toJSON(depth+1, opts))
	}
	return n
}

func printJSON(w io.Writer, root *Event, opts options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root.toJSON(1, opts)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
