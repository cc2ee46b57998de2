package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Table string

const (
	TableProducts     Table = "products"
	TablePriceHistory Table = "price_history"
	TableAlerts       Table = "alerts"
	TableScrapeLogs   Table = "scrape_logs"
	TableProfiles     Table = "profiles"
)

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent — уведомление об изменении строки, адресованное владельцу.
type ChangeEvent struct {
	Table    Table           `json:"table"`
	Type     ChangeType      `json:"type"`
	OwnerID  uuid.UUID       `json:"owner_id"`
	RecordID uuid.UUID       `json:"record_id"`
	New      json.RawMessage `json:"new,omitempty"`
	At       time.Time       `json:"at"`
}

func NewChangeEvent(table Table, typ ChangeType, ownerID, recordID uuid.UUID, record any) ChangeEvent {
	var raw json.RawMessage
	if record != nil {
		if b, err := json.Marshal(record); err == nil {
			raw = b
		}
	}

	return ChangeEvent{
		Table:    table,
		Type:     typ,
		OwnerID:  ownerID,
		RecordID: recordID,
		New:      raw,
		At:       time.Now().UTC(),
	}
}

// ChangeFilter отбирает события владельца; пустой Table означает все таблицы.
type ChangeFilter struct {
	Table   Table
	OwnerID uuid.UUID
}

func (f ChangeFilter) Matches(ev ChangeEvent) bool {
	if ev.OwnerID != f.OwnerID {
		return false
	}

	return f.Table == "" || f.Table == ev.Table
}
