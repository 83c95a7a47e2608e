package otel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

type seatLabel int

func (s seatLabel) String() string { return "seat-" + time.Duration(s).String() }

func TestToAttribute(t *testing.T) {
	checkIn := time.Date(2025, 3, 4, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{name: "bool", value: true, want: attribute.Bool("k", true)},
		{name: "string", value: "S-001", want: attribute.String("k", "S-001")},
		{name: "int", value: 12, want: attribute.Int("k", 12)},
		{name: "int64", value: int64(7), want: attribute.Int64("k", 7)},
		{name: "float64", value: 0.5, want: attribute.Float64("k", 0.5)},
		{name: "string slice", value: []string{"a", "b"}, want: attribute.StringSlice("k", []string{"a", "b"})},
		{name: "duration in ms", value: 2 * time.Second, want: attribute.Int64("k", 2000)},
		{name: "time", value: checkIn, want: attribute.String("k", "2025-03-04T08:30:00Z")},
		{name: "stringer", value: seatLabel(0), want: attribute.String("k", "seat-0s")},
		{name: "fallback", value: struct{ N int }{3}, want: attribute.String("k", "{3}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAttribute("k", tt.value))
		})
	}
}
