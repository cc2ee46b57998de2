package kafka

import (
	"fmt"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// AlertCodec кодирует alert.triggered в protobuf Struct.
// Цены передаются строками, время в виде google.protobuf.Timestamp {seconds, nanos}.
type AlertCodec struct{}

func NewAlertCodec() AlertCodec { return AlertCodec{} }

func (AlertCodec) EncodeAlertTriggered(ev *usecase.AlertTriggeredEvent) ([]byte, error) {
	ts := timestamppb.New(ev.TriggeredAt)
	triggeredAt := map[string]any{
		"seconds": float64(ts.GetSeconds()),
		"nanos":   float64(ts.GetNanos()),
	}

	payload, err := structpb.NewStruct(map[string]any{
		"event_type":     usecase.EventAlertTriggered,
		"event_id":       ev.EventID.String(),
		"alert_id":       ev.AlertID.String(),
		"product_id":     ev.ProductID.String(),
		"owner_id":       ev.OwnerID.String(),
		"product_title":  ev.ProductTitle,
		"product_url":    ev.ProductURL,
		"observed_price": ev.ObservedPrice.String(),
		"target_price":   ev.TargetPrice.String(),
		"currency":       ev.Currency,
		"triggered_at":   triggeredAt,
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

func (AlertCodec) DecodeAlertTriggered(data []byte) (*usecase.AlertTriggeredEvent, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(data, &payload); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	f := payload.GetFields()
	if t := f["event_type"].GetStringValue(); t != usecase.EventAlertTriggered {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("unexpected event type %q", t))
	}

	d := decoder{fields: f}
	ev := &usecase.AlertTriggeredEvent{
		EventID:       d.uuid("event_id"),
		AlertID:       d.uuid("alert_id"),
		ProductID:     d.uuid("product_id"),
		OwnerID:       d.uuid("owner_id"),
		ProductTitle:  f["product_title"].GetStringValue(),
		ProductURL:    f["product_url"].GetStringValue(),
		ObservedPrice: d.decimal("observed_price"),
		TargetPrice:   d.decimal("target_price"),
		Currency:      f["currency"].GetStringValue(),
	}

	tsFields := f["triggered_at"].GetStructValue().GetFields()
	ts := &timestamppb.Timestamp{
		Seconds: int64(tsFields["seconds"].GetNumberValue()),
		Nanos:   int32(tsFields["nanos"].GetNumberValue()),
	}
	if err := ts.CheckValid(); err != nil && d.err == nil {
		d.err = fmt.Errorf("triggered_at: %w", err)
	}
	ev.TriggeredAt = ts.AsTime()

	if d.err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), d.err)
	}

	return ev, nil
}

// decoder запоминает первую ошибку разбора полей.
type decoder struct {
	fields map[string]*structpb.Value
	err    error
}

func (d *decoder) uuid(key string) uuid.UUID {
	id, err := uuid.Parse(d.fields[key].GetStringValue())
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: %w", key, err)
	}

	return id
}

func (d *decoder) decimal(key string) decimal.Decimal {
	v, err := decimal.NewFromString(d.fields[key].GetStringValue())
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s: %w", key, err)
	}

	return v
}
