package orderdate

import (
	"testing"
	"time"

	"github.com/example/staletick/internal/models"
)

// Fixed reference time for all table cases: Thu 2024-03-14 12:00 UTC.
var now = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "today russian",
			raw:  "Сегодня в 09:30",
			want: time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "yesterday russian",
			raw:  "Вчера в 23:59",
			want: time.Date(2024, time.March, 13, 23, 59, 0, 0, time.UTC),
		},
		{
			name: "today english",
			raw:  "Today at 09:30",
			want: time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "yesterday english",
			raw:  "Yesterday at 07:05",
			want: time.Date(2024, time.March, 13, 7, 5, 0, 0, time.UTC),
		},
		{
			name: "day month russian with v separator",
			raw:  "2 янв в 14:00",
			want: time.Date(2024, time.January, 2, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "day month russian with comma",
			raw:  "28 дек, 18:45",
			want: time.Date(2024, time.December, 28, 18, 45, 0, 0, time.UTC),
		},
		{
			name: "day month english",
			raw:  "5 Feb at 08:15",
			want: time.Date(2024, time.February, 5, 8, 15, 0, 0, time.UTC),
		},
		{
			name: "genitive may",
			raw:  "9 мая, 10:00",
			want: time.Date(2024, time.May, 9, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "absolute timestamp",
			raw:  "2023-11-02 21:17:44",
			want: time.Date(2023, time.November, 2, 21, 17, 44, 0, time.UTC),
		},
		{
			name: "surrounding whitespace",
			raw:  "  Сегодня в 09:30  ",
			want: time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, now)
			if got != tt.want.Unix() {
				t.Errorf("Normalize(%q) = %d, want %d (%s)", tt.raw, got, tt.want.Unix(), tt.want)
			}
		})
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not a date"},
		{"unknown month", "3 xyz в 14:00"},
		{"bad clock", "Сегодня в 25:99"},
		{"missing clock", "Вчера в "},
		{"day out of range", "42 янв в 14:00"},
		{"wrong absolute layout", "02.11.2023 21:17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, now); got != Unparseable {
				t.Errorf("Normalize(%q) = %d, want sentinel %d", tt.raw, got, Unparseable)
			}
		})
	}
}

func TestResolvePrefersAbsoluteTimestamp(t *testing.T) {
	placed := time.Date(2024, time.February, 1, 6, 0, 0, 0, time.UTC)
	order := models.Order{ID: "1", PlacedAt: placed, RawDate: "Сегодня в 09:30"}

	if got := Resolve(order, now); got != placed.Unix() {
		t.Errorf("Resolve = %d, want PlacedAt %d", got, placed.Unix())
	}
}

func TestResolveFallsBackToRawDate(t *testing.T) {
	order := models.Order{ID: "1", RawDate: "Вчера в 10:00"}
	want := time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC).Unix()

	if got := Resolve(order, now); got != want {
		t.Errorf("Resolve = %d, want %d", got, want)
	}
}
